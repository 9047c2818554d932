package notifier

import (
	"fmt"
	"html"
	"path/filepath"
	"strings"
	"time"

	"github.com/thaleswillreis/Mercado-Financeiro/internal/model"
)

const dateLayout = "2006-01-02"

// escape makes dynamic text safe for Telegram's HTML parse mode.
func escape(v any) string { return html.EscapeString(fmt.Sprint(v)) }

// FormatPipelineReport formats a successful acquisition run.
func FormatPipelineReport(r *model.PipelineReport) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>IBOV/USD</b> | %s a %s\n\n", r.Start.Format(dateLayout), r.End.Format(dateLayout)))
	b.WriteString(fmt.Sprintf("Pregões IBOV: %d | Câmbio: %d | Cruzados: %d\n", r.IndexRows, r.CurrencyRows, r.MergedRows))

	if s := r.Summary; s != nil {
		b.WriteString(fmt.Sprintf("\n💵 <b>IBOV_USD</b> em %s: %.2f\n", s.LastDate.Format(dateLayout), s.Last))
		b.WriteString(fmt.Sprintf("Faixa %d pregões: %.2f ~ %.2f (posição %.0f%%)\n", s.Window, s.Low, s.High, s.Position*100))
	}

	if len(r.Files) > 0 {
		b.WriteString("\n📁 Arquivos:\n")
		for _, f := range r.Files {
			b.WriteString(fmt.Sprintf("  %s\n", escape(filepath.Base(f))))
		}
	}
	b.WriteString(fmt.Sprintf("\nDuração: %s", r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond)))
	return b.String()
}

// FormatPipelineFailure formats a failed acquisition run.
func FormatPipelineFailure(err error) string {
	return fmt.Sprintf("❌ <b>Falha na coleta IBOV/USD</b>\n\n%s", escape(err))
}

// FormatSnapshotResult formats the outcome of a snapshot download.
func FormatSnapshotResult(r *model.SnapshotResult, err error) string {
	switch {
	case err != nil:
		return fmt.Sprintf("❌ <b>Carteira teórica IBOV</b>\n\nFalha: %s", escape(err))
	case r.Produced:
		return fmt.Sprintf("✅ <b>Carteira teórica IBOV</b> atualizada\n\n%s ← %s", escape(filepath.Base(r.Path)), escape(r.Source))
	case r.TriggerErr != nil:
		return fmt.Sprintf("⚠️ <b>Carteira teórica IBOV</b>\n\nDownload não acionado: %s", escape(r.TriggerErr))
	default:
		return "⚠️ <b>Carteira teórica IBOV</b>\n\nArquivo não encontrado após o download"
	}
}

// FormatBusy answers a command for a job that is already running.
func FormatBusy(job string) string {
	return fmt.Sprintf("⏳ %s já está em execução, tente novamente depois", escape(job))
}

// FormatHelp lists the commands understood in serve mode.
func FormatHelp() string {
	return "Comandos disponíveis:\n• /pipeline: coleta IBOV/USD agora\n• /snapshot: baixa a carteira teórica\n• /help"
}

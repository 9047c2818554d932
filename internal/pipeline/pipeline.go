// Package pipeline sequences fetch, reconcile and export for one run.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/thaleswillreis/Mercado-Financeiro/internal/calculator"
	"github.com/thaleswillreis/Mercado-Financeiro/internal/collector"
	"github.com/thaleswillreis/Mercado-Financeiro/internal/exporter"
	"github.com/thaleswillreis/Mercado-Financeiro/internal/model"
	"github.com/thaleswillreis/Mercado-Financeiro/internal/reconciler"
	"github.com/thaleswillreis/Mercado-Financeiro/internal/recorder"
)

// FileNames returns the index, currency and merged file names for end.
func FileNames(end time.Time) (index, currency, merged string) {
	d := end.Format(collector.DateFormat)
	return fmt.Sprintf("IBOVESPA_%s.csv", d),
		fmt.Sprintf("USD_%s.csv", d),
		fmt.Sprintf("IBOVESPA_USD_%s.csv", d)
}

// Pipeline owns no transformation logic; it only orders the stages.
type Pipeline struct {
	Collector  *collector.Collector
	Reconciler *reconciler.Reconciler
	Exporter   *exporter.Exporter
	Recorder   recorder.Recorder
	Logger     zerolog.Logger
}

// New creates a Pipeline. A nil recorder disables run history.
func New(col *collector.Collector, rec *reconciler.Reconciler, exp *exporter.Exporter, hist recorder.Recorder, logger zerolog.Logger) *Pipeline {
	if hist == nil {
		hist = recorder.NewNoopRecorder()
	}
	return &Pipeline{Collector: col, Reconciler: rec, Exporter: exp, Recorder: hist, Logger: logger}
}

// Run fetches both series, reconciles them and writes the three tables. If
// the fetch fails nothing is reconciled or written.
func (p *Pipeline) Run(ctx context.Context) (*model.PipelineReport, error) {
	report := &model.PipelineReport{
		RunID:     uuid.NewString(),
		Start:     p.Collector.Start,
		End:       collector.EndDate(p.Collector.Now()),
		StartedAt: time.Now(),
	}
	logger := p.Logger.With().Str("run_id", report.RunID).Logger()

	err := p.run(ctx, report, logger)
	report.FinishedAt = time.Now()
	p.record(report, err, logger)
	if err != nil {
		return report, err
	}
	logger.Info().Strs("files", report.Files).Msg("files saved")
	return report, nil
}

func (p *Pipeline) run(ctx context.Context, report *model.PipelineReport, logger zerolog.Logger) error {
	pair, err := p.Collector.FetchPair(ctx)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	report.End = pair.End

	logger.Info().Msg("reconciling series")
	res := p.Reconciler.Reconcile(pair.Index, pair.Currency)
	report.IndexRows = res.Index.Len()
	report.CurrencyRows = res.Currency.Len()
	report.MergedRows = res.Merged.Len()
	logger.Info().
		Int("index_rows", report.IndexRows).
		Int("currency_rows", report.CurrencyRows).
		Int("merged_rows", report.MergedRows).
		Msg("reconciliation complete")

	if report.MergedRows > 0 {
		if s, err := calculator.Summarize(res.Merged, p.Reconciler.RatioColumn, calculator.SummaryWindow); err != nil {
			logger.Warn().Err(err).Msg("ratio summary unavailable")
		} else {
			report.Summary = s
		}
	}

	indexName, currencyName, mergedName := FileNames(pair.End)
	files, err := p.Exporter.Export([]exporter.File{
		{Name: indexName, Table: res.Index},
		{Name: currencyName, Table: res.Currency},
		{Name: mergedName, Table: res.Merged},
	})
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	report.Files = files

	if err := p.Recorder.RecordRatios(ratioRows(res.Merged, report.RunID)); err != nil {
		logger.Error().Err(err).Msg("record ratios")
	}
	return nil
}

func (p *Pipeline) record(report *model.PipelineReport, runErr error, logger zerolog.Logger) {
	run := &recorder.PipelineRun{
		RunID:        report.RunID,
		StartDate:    report.Start.Format(collector.DateFormat),
		EndDate:      report.End.Format(collector.DateFormat),
		Status:       recorder.StatusOK,
		IndexRows:    report.IndexRows,
		CurrencyRows: report.CurrencyRows,
		MergedRows:   report.MergedRows,
		StartedAt:    report.StartedAt,
		FinishedAt:   report.FinishedAt,
	}
	if runErr != nil {
		run.Status = recorder.StatusFailed
		run.Error = runErr.Error()
	}
	if err := p.Recorder.RecordPipelineRun(run); err != nil {
		logger.Error().Err(err).Msg("record pipeline run")
	}
}

func ratioRows(merged *model.Table, runID string) []recorder.RatioRow {
	rows := make([]recorder.RatioRow, merged.Len())
	for i, d := range merged.Dates {
		rows[i] = recorder.RatioRow{
			Date:    d.Format(collector.DateFormat),
			IBOV:    merged.Values[0][i],
			Cambio:  merged.Values[1][i],
			IBOVUSD: merged.Values[2][i],
			RunID:   runID,
		}
	}
	return rows
}

package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thaleswillreis/Mercado-Financeiro/internal/model"
)

func newTestNotifier(srv *httptest.Server) *TelegramNotifier {
	n := NewTelegramNotifier("TOKEN", "42", "", zerolog.Nop())
	n.APIBase = srv.URL
	return n
}

func TestSend(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/botTOKEN/sendMessage", r.URL.Path)
		var payload map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "42", payload["chat_id"])
		assert.Equal(t, "olá", payload["text"])
		assert.Equal(t, "HTML", payload["parse_mode"])
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	require.NoError(t, newTestNotifier(srv).Send(t.Context(), "olá"))
	require.EqualValues(t, 1, hits.Load())
}

func TestSend_SingleAttemptOnError(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, `{"ok":false}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	err := newTestNotifier(srv).Send(t.Context(), "x")
	require.ErrorContains(t, err, "status 400")
	require.EqualValues(t, 1, hits.Load())
}

func TestStartPolling_DispatchesCommands(t *testing.T) {
	replies := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/botTOKEN/getUpdates":
			if r.URL.Query().Get("offset") == "0" {
				w.Write([]byte(`{"ok":true,"result":[{"update_id":7,"message":{"text":" /help "}},{"update_id":8}]}`))
				return
			}
			<-r.Context().Done()
		case "/botTOKEN/sendMessage":
			var payload map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			replies <- payload["text"]
			w.Write([]byte(`{"ok":true}`))
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan struct{})
	go func() {
		defer close(done)
		newTestNotifier(srv).StartPolling(ctx, func(_ context.Context, cmd string) string {
			return "reply to " + cmd
		})
	}()

	select {
	case got := <-replies:
		require.Equal(t, "reply to /help", got)
	case <-time.After(5 * time.Second):
		t.Fatal("no reply sent")
	}
	cancel()
	<-done
}

func TestFormatPipelineReport(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC) }
	msg := FormatPipelineReport(&model.PipelineReport{
		Start: day(1), End: day(6),
		Files:     []string{"/out/IBOVESPA_2025-01-06.csv"},
		IndexRows: 3, CurrencyRows: 4, MergedRows: 3,
		Summary: &model.RatioSummary{LastDate: day(3), Last: 21000, High: 22000, Low: 20000, Position: 0.5, Window: 3},
	})

	assert.Contains(t, msg, "2025-01-01 a 2025-01-06")
	assert.Contains(t, msg, "Cruzados: 3")
	assert.Contains(t, msg, "2025-01-03: 21000.00")
	assert.Contains(t, msg, "posição 50%")
	assert.Contains(t, msg, "IBOVESPA_2025-01-06.csv")
	assert.NotContains(t, msg, "/out/")
}

func TestFormatSnapshotResult(t *testing.T) {
	assert.Contains(t, FormatSnapshotResult(&model.SnapshotResult{Produced: true, Path: "/x/IBOV_LIST.csv", Source: "IBOVDia_1.csv"}, nil), "IBOV_LIST.csv ← IBOVDia_1.csv")
	assert.Contains(t, FormatSnapshotResult(&model.SnapshotResult{TriggerErr: errors.New("boom")}, nil), "não acionado: boom")
	assert.Contains(t, FormatSnapshotResult(&model.SnapshotResult{}, nil), "não encontrado")
	assert.Contains(t, FormatSnapshotResult(&model.SnapshotResult{}, errors.New("setup")), "Falha: setup")
}

func TestFormatters_EscapeHTML(t *testing.T) {
	err := errors.New(`yahoo API error: status 502, body: <html><body>Bad Gateway & co</body></html>`)

	for _, msg := range []string{
		FormatPipelineFailure(err),
		FormatSnapshotResult(&model.SnapshotResult{}, err),
		FormatSnapshotResult(&model.SnapshotResult{TriggerErr: err}, nil),
	} {
		assert.NotContains(t, msg, "<html>")
		assert.Contains(t, msg, "&lt;html&gt;&lt;body&gt;Bad Gateway &amp; co")
		// Formatting markup survives.
		assert.Contains(t, msg, "<b>")
	}
}

package pipeline_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/thaleswillreis/Mercado-Financeiro/internal/collector"
	"github.com/thaleswillreis/Mercado-Financeiro/internal/collector/mocks"
	"github.com/thaleswillreis/Mercado-Financeiro/internal/exporter"
	"github.com/thaleswillreis/Mercado-Financeiro/internal/model"
	"github.com/thaleswillreis/Mercado-Financeiro/internal/pipeline"
	"github.com/thaleswillreis/Mercado-Financeiro/internal/reconciler"
	"github.com/thaleswillreis/Mercado-Financeiro/internal/recorder"
)

type spyRecorder struct {
	recorder.NoopRecorder
	runs   []*recorder.PipelineRun
	ratios []recorder.RatioRow
}

func (s *spyRecorder) RecordPipelineRun(run *recorder.PipelineRun) error {
	s.runs = append(s.runs, run)
	return nil
}

func (s *spyRecorder) RecordRatios(rows []recorder.RatioRow) error {
	s.ratios = append(s.ratios, rows...)
	return nil
}

func rawSeries(symbol string, closes ...float64) *model.RawSeries {
	s := &model.RawSeries{
		Symbol: symbol,
		Index:  []time.Time{time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)},
	}
	s.Columns = []model.Column{{Label: model.Label{"Close", symbol}, Values: closes}}
	if symbol == "^BVSP" {
		s.Columns = append(s.Columns, model.Column{Label: model.Label{"Volume", symbol}, Values: []float64{9000000, 9100000}})
	}
	return s
}

func newPipeline(t *testing.T, f collector.SeriesFetcher, dir string, spy *spyRecorder) *pipeline.Pipeline {
	col := collector.NewCollector(f, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), zerolog.Nop())
	col.Now = func() time.Time { return time.Date(2025, 1, 4, 9, 0, 0, 0, time.UTC) }
	return pipeline.New(col, reconciler.New(), exporter.New(dir), spy, zerolog.Nop())
}

func TestFileNames(t *testing.T) {
	t.Parallel()

	i, c, m := pipeline.FileNames(time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC))
	require.Equal(t, "IBOVESPA_2025-01-03.csv", i)
	require.Equal(t, "USD_2025-01-03.csv", c)
	require.Equal(t, "IBOVESPA_USD_2025-01-03.csv", m)
}

func TestRun_WritesThreeFiles(t *testing.T) {
	t.Parallel()

	// Arrange
	ctrl := gomock.NewController(t)
	f := mocks.NewMockSeriesFetcher(ctrl)
	f.EXPECT().Name().Return("mock").AnyTimes()
	f.EXPECT().Fetch(gomock.Any(), "^BVSP", gomock.Any(), gomock.Any()).Return(rawSeries("^BVSP", 120000, 121000), nil)
	f.EXPECT().Fetch(gomock.Any(), "USDBRL=X", gomock.Any(), gomock.Any()).Return(rawSeries("USDBRL=X", 6, 5.5), nil)
	dir := filepath.Join(t.TempDir(), "output")
	spy := &spyRecorder{}

	// Act
	report, err := newPipeline(t, f, dir, spy).Run(t.Context())

	// Assert
	require.NoError(t, err)
	require.NotEmpty(t, report.RunID)
	require.Equal(t, 2, report.MergedRows)
	require.NotNil(t, report.Summary)
	require.Equal(t, 22000.0, report.Summary.Last)

	read := func(name string) string {
		b, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		return string(b)
	}
	require.Equal(t, "Date,Fechamento_IBOV,Volume_IBOV\n2025-01-02,120000.0,9000000\n2025-01-03,121000.0,9100000\n", read("IBOVESPA_2025-01-03.csv"))
	require.Equal(t, "Date,Fechamento_Cambio\n2025-01-02,6.0\n2025-01-03,5.5\n", read("USD_2025-01-03.csv"))
	require.Equal(t, "Date,Fechamento_IBOV,Fechamento_Cambio,IBOV_USD\n2025-01-02,120000.0,6.0,20000.0\n2025-01-03,121000.0,5.5,22000.0\n", read("IBOVESPA_USD_2025-01-03.csv"))

	require.Len(t, spy.runs, 1)
	require.Equal(t, recorder.StatusOK, spy.runs[0].Status)
	require.Equal(t, "2025-01-03", spy.runs[0].EndDate)
	require.Len(t, spy.ratios, 2)
	require.Equal(t, report.RunID, spy.ratios[0].RunID)
}

func TestRun_DataUnavailableWritesNothing(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	f := mocks.NewMockSeriesFetcher(ctrl)
	f.EXPECT().Name().Return("mock").AnyTimes()
	f.EXPECT().Fetch(gomock.Any(), "^BVSP", gomock.Any(), gomock.Any()).Return(&model.RawSeries{Symbol: "^BVSP"}, nil)
	f.EXPECT().Fetch(gomock.Any(), "USDBRL=X", gomock.Any(), gomock.Any()).Return(rawSeries("USDBRL=X", 6, 5.5), nil)
	dir := filepath.Join(t.TempDir(), "output")
	spy := &spyRecorder{}

	_, err := newPipeline(t, f, dir, spy).Run(t.Context())

	require.ErrorIs(t, err, collector.ErrDataUnavailable)
	_, statErr := os.Stat(dir)
	require.True(t, os.IsNotExist(statErr), "output dir must not be touched")
	require.Len(t, spy.runs, 1)
	require.Equal(t, recorder.StatusFailed, spy.runs[0].Status)
	require.Empty(t, spy.ratios)
}

package exporter

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/thaleswillreis/Mercado-Financeiro/internal/model"
)

func mergedTable() *model.Table {
	return &model.Table{
		Columns: []string{"Fechamento_IBOV", "Fechamento_Cambio", "IBOV_USD"},
		Dates: []time.Time{
			time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC),
		},
		Values: [][]float64{
			{130000, 121000.5},
			{5, 0},
			{26000, math.Inf(1)},
		},
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, mergedTable()))

	want := "Date,Fechamento_IBOV,Fechamento_Cambio,IBOV_USD\n" +
		"2025-01-02,130000.0,5.0,26000.0\n" +
		"2025-01-03,121000.5,0.0,inf\n"
	require.Equal(t, want, buf.String())
}

func TestWriteTable_EmptyKeepsHeader(t *testing.T) {
	var buf bytes.Buffer
	tbl := &model.Table{Columns: []string{"Fechamento_IBOV", "Fechamento_Cambio", "IBOV_USD"}, Values: [][]float64{{}, {}, {}}}
	require.NoError(t, WriteTable(&buf, tbl))
	require.Equal(t, "Date,Fechamento_IBOV,Fechamento_Cambio,IBOV_USD\n", buf.String())
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{26000, "26000.0"},
		{130000, "130000.0"},
		{5.4321, "5.4321"},
		{1e16, "1e+16"},
		{1.5e-05, "1.5e-05"},
		{0.0001, "0.0001"},
		{math.NaN(), ""},
		{math.Inf(-1), "-inf"},
		{0.1 + 0.2, "0.30000000000000004"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, FormatFloat(tt.in))
	}
}

func TestWriteTable_CountColumns(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC) }
	tbl := &model.Table{
		Columns: []string{"Fechamento_IBOV", "Volume_IBOV", "Volume_Cambio"},
		Dates:   []time.Time{day(2), day(3)},
		Values: [][]float64{
			{120000, 121000.5},
			{9000000, 9100000},
			{0, math.NaN()},
		},
		Integer: []bool{false, true, true},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, tbl))

	// A count column with a gap falls back to float formatting.
	want := "Date,Fechamento_IBOV,Volume_IBOV,Volume_Cambio\n" +
		"2025-01-02,120000.0,9000000,0.0\n" +
		"2025-01-03,121000.5,9100000,\n"
	require.Equal(t, want, buf.String())
}

func TestExport_CreatesDirAndOverwrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "output")
	e := New(dir)

	paths, err := e.Export([]File{{Name: "IBOVESPA_USD_2025-01-03.csv", Table: mergedTable()}})
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "IBOVESPA_USD_2025-01-03.csv")}, paths)

	// Second export with the same name replaces the file.
	tbl := mergedTable()
	tbl.Dates, tbl.Values = tbl.Dates[:1], [][]float64{{1}, {1}, {1}}
	_, err = e.Export([]File{{Name: "IBOVESPA_USD_2025-01-03.csv", Table: tbl}})
	require.NoError(t, err)

	b, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	require.Equal(t, "Date,Fechamento_IBOV,Fechamento_Cambio,IBOV_USD\n2025-01-02,1.0,1.0,1.0\n", string(b))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temporary files may be left behind")
}

func TestExport_FailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	// A directory squatting on the second target makes its rename fail.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "USD.csv"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "USD.csv", "keep"), []byte("x"), 0o644))

	_, err := New(dir).Export([]File{
		{Name: "IBOVESPA.csv", Table: mergedTable()},
		{Name: "USD.csv", Table: mergedTable()},
	})
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	require.Equal(t, []string{"USD.csv"}, names)
}

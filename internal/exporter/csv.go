// Package exporter persists canonical tables as CSV files.
package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/thaleswillreis/Mercado-Financeiro/internal/model"
)

const dateLayout = "2006-01-02"

// File is one table to be written under Name inside the export directory.
type File struct {
	Name  string
	Table *model.Table
}

// Exporter writes tables into Dir.
type Exporter struct {
	Dir string
}

// New creates an Exporter for dir.
func New(dir string) *Exporter {
	return &Exporter{Dir: dir}
}

// Export writes every file or none. Each table goes to a temporary file in
// Dir first; targets are replaced only after all writes succeeded.
// Renames are atomic per file.
func (e *Exporter) Export(files []File) ([]string, error) {
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	temps := make([]string, 0, len(files))
	cleanup := func() {
		for _, p := range temps {
			os.Remove(p)
		}
	}

	for _, f := range files {
		tmp, err := writeTemp(e.Dir, f)
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("write %s: %w", f.Name, err)
		}
		temps = append(temps, tmp)
	}

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = filepath.Join(e.Dir, f.Name)
		if err := os.Rename(temps[i], paths[i]); err != nil {
			// Files already placed by this export are removed as well.
			for _, p := range paths[:i] {
				os.Remove(p)
			}
			temps = temps[i:]
			cleanup()
			return nil, fmt.Errorf("rename %s: %w", f.Name, err)
		}
	}
	return paths, nil
}

func writeTemp(dir string, f File) (string, error) {
	tmp, err := os.CreateTemp(dir, "."+f.Name+".*.tmp")
	if err != nil {
		return "", err
	}
	if err := WriteTable(tmp, f.Table); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

// WriteTable encodes t as CSV: header row, then one row per date. No row
// labels are written.
func WriteTable(w io.Writer, t *model.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header()); err != nil {
		return err
	}
	formats := make([]func(float64) string, len(t.Columns))
	for c := range t.Columns {
		formats[c] = FormatFloat
		if t.IsInteger(c) && wholeNumbers(t.Values[c]) {
			formats[c] = FormatInt
		}
	}
	row := make([]string, len(t.Columns)+1)
	for r, d := range t.Dates {
		row[0] = d.Format(dateLayout)
		for c := range t.Columns {
			row[c+1] = formats[c](t.Values[c][r])
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// wholeNumbers reports whether every value is finite and integral. A count
// column with a gap is written as floats, as pandas promotes it.
func wholeNumbers(vs []float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
			return false
		}
	}
	return true
}

// FormatInt renders an integral count without a fractional part.
func FormatInt(v float64) string {
	return strconv.FormatFloat(v, 'f', 0, 64)
}

// FormatFloat renders v the way pandas writes a float column: the shortest
// round-trip digits, always with a fractional part or an exponent
// ("130000.0", "1e+16", "1.5e-05"). NaN is an empty field.
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return ""
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	if abs := math.Abs(v); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

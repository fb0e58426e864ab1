package dataset

import (
	"strconv"
	"strings"
)

// Source identifies where a Dataset came from.
type Source string

const (
	SourceBuiltin Source = "builtin"
	SourceUpload  Source = "upload"
)

// Dataset is an in-memory table of rows x named columns. Cells are kept as raw
// strings; type inference happens in the profiler.
type Dataset struct {
	Name     string
	Source   Source
	Filename string
	Columns  []string
	Rows     [][]string
}

// naTokens mirrors the default missing-value markers of common dataframe readers.
var naTokens = func() map[string]struct{} {
	m := map[string]struct{}{}
	for _, t := range []string{
		"", "NA", "N/A", "n/a", "NaN", "nan", "-NaN", "-nan", "null", "NULL", "None",
		"#N/A", "#N/A N/A", "#NA", "<NA>", "1.#IND", "-1.#IND", "1.#QNAN", "-1.#QNAN",
	} {
		m[t] = struct{}{}
	}
	return m
}()

// IsMissing reports whether a raw cell value counts as missing.
func IsMissing(v string) bool {
	_, ok := naTokens[strings.TrimSpace(v)]
	return ok
}

// NumRows returns the number of data rows (header excluded).
func (d *Dataset) NumRows() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// NumCols returns the number of columns.
func (d *Dataset) NumCols() int {
	if d == nil {
		return 0
	}
	return len(d.Columns)
}

// Empty reports whether the dataset has no rows or no columns.
func (d *Dataset) Empty() bool {
	return d.NumRows() == 0 || d.NumCols() == 0
}

// Head returns up to n leading rows. The returned slice shares row storage with d.
func (d *Dataset) Head(n int) [][]string {
	if d == nil || n <= 0 {
		return nil
	}
	if n > len(d.Rows) {
		n = len(d.Rows)
	}
	return d.Rows[:n]
}

// Column returns the values of column i in row order.
func (d *Dataset) Column(i int) []string {
	out := make([]string, len(d.Rows))
	for r, row := range d.Rows {
		if i < len(row) {
			out[r] = row[i]
		}
	}
	return out
}

// newDataset builds a rectangular Dataset from a header and records, padding
// short records and widening the header for long ones.
func newDataset(header []string, records [][]string) *Dataset {
	ncol := len(header)
	for _, rec := range records {
		if len(rec) > ncol {
			ncol = len(rec)
		}
	}
	cols := make([]string, ncol)
	seen := map[string]int{}
	for i := 0; i < ncol; i++ {
		name := ""
		if i < len(header) {
			name = strings.TrimSpace(header[i])
		}
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		// duplicate headers get a numeric suffix so column names stay unique
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			name = name + "." + strconv.Itoa(n)
		} else {
			seen[name] = 1
		}
		cols[i] = name
	}
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		if isBlankRecord(rec) {
			continue
		}
		row := make([]string, ncol)
		for j := 0; j < ncol && j < len(rec); j++ {
			row[j] = strings.TrimSpace(rec[j])
		}
		rows = append(rows, row)
	}
	return &Dataset{Columns: cols, Rows: rows}
}

func isBlankRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

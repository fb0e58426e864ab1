package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

type csvReader struct{}

func (csvReader) CanRead(filename string) bool {
	return hasExt(filename, ".csv", ".tsv")
}

func (csvReader) Read(data []byte) (*Dataset, error) {
	return ReadCSV(bytes.NewReader(data), 0)
}

// ReadCSV parses delimited text with a header row. If delim is 0 it is sniffed
// from the header line among ',', ';' and '\t'. Stray quotes inside unquoted
// fields are kept as data. Records longer than the header are rejected; shorter
// ones are padded with missing cells.
func ReadCSV(r io.Reader, delim rune) (*Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if bytes.IndexByte(data, 0) >= 0 || !utf8.Valid(data) {
		return nil, errors.New("not a delimited text file")
	}
	if delim == 0 {
		delim = sniffDelimiter(data)
	}
	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true
	cr.Comma = delim

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoData
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	ncol := len(header)
	var records [][]string
	line := 1
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", line+1, err)
		}
		line++
		if len(rec) > ncol && !isBlankRecord(rec[ncol:]) {
			return nil, fmt.Errorf("expected %d fields in line %d, saw %d", ncol, line, len(rec))
		}
		if len(rec) > ncol {
			rec = rec[:ncol]
		}
		records = append(records, rec)
	}
	return newDataset(header, records), nil
}

// sniffDelimiter picks the most frequent candidate separator on the first line.
func sniffDelimiter(data []byte) rune {
	first := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		first = data[:i]
	}
	best, bestN := ',', bytes.Count(first, []byte{','})
	for _, c := range []rune{';', '\t'} {
		if n := bytes.Count(first, []byte(string(c))); n > bestN {
			best, bestN = c, n
		}
	}
	return best
}

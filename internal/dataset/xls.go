package dataset

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/extrame/xls"
)

type xlsReader struct{}

func (xlsReader) CanRead(filename string) bool {
	return hasExt(filename, ".xls")
}

func (xlsReader) Read(data []byte) (*Dataset, error) {
	return ReadXLS(data, 0)
}

// ReadXLS extracts a worksheet (0-based) of a legacy BIFF workbook.
func ReadXLS(data []byte, sheet int) (*Dataset, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open xls: %w", err)
	}
	if wb == nil || wb.NumSheets() == 0 {
		return nil, errors.New("open xls: workbook has no sheets")
	}
	ws := wb.GetSheet(sheet)
	if ws == nil {
		return nil, fmt.Errorf("open xls: sheet %d not found", sheet)
	}
	var rows [][]string
	for i := 0; i <= int(ws.MaxRow); i++ {
		row := sheetRow(ws, i)
		if row == nil {
			continue
		}
		last := row.LastCol()
		rec := make([]string, 0, last)
		for j := 0; j < last; j++ {
			rec = append(rec, row.Col(j))
		}
		rows = append(rows, rec)
	}
	if len(rows) == 0 {
		return nil, ErrNoData
	}
	return newDataset(rows[0], rows[1:]), nil
}

// sheetRow returns nil for rows the sheet has no ROW record for; the library
// dereferences the missing entry.
func sheetRow(ws *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return ws.Row(i)
}

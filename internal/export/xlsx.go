// Package export writes venue results to spreadsheet files.
package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/venue-cli/internal/model"
)

// SheetName is the worksheet the venues are written to.
const SheetName = "Restaurants"

// WriteXLSX saves venues to path as a single-sheet workbook with a header
// row of model.Columns followed by one row per venue in order.
func WriteXLSX(path string, venues []model.Venue) error {
	if len(venues) == 0 {
		return eris.New("xlsx: no venues to write")
	}

	f := xlsx.NewFile()
	sheet, err := f.AddSheet(SheetName)
	if err != nil {
		return eris.Wrap(err, "xlsx: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range model.Columns {
		header.AddCell().SetString(col)
	}

	for _, v := range venues {
		row := sheet.AddRow()
		row.AddCell().SetString(v.Name)
		row.AddCell().SetString(v.Address)
		row.AddCell().SetString(v.Phone)
		rating := row.AddCell()
		if v.Rating != nil {
			rating.SetFloat(*v.Rating)
		} else {
			rating.SetString(model.NotAvailable)
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "xlsx: save %s", path)
	}
	return nil
}

// ReadXLSX reads the venue sheet at path and returns every row, header
// included, as strings.
func ReadXLSX(path string) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open file")
	}

	sheet, ok := f.Sheet[SheetName]
	if !ok {
		return nil, eris.Errorf("xlsx: sheet %q not found", SheetName)
	}

	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

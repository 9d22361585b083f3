package export

import (
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// DefaultSheetName matches the sheet name of the original survey files.
const DefaultSheetName = "조편성"

// WriteXLSX writes a table as a single-sheet workbook.
func WriteXLSX(w io.Writer, t Table, sheetName string) error {
	if sheetName == "" {
		sheetName = DefaultSheetName
	}

	f := xlsx.NewFile()
	sheet, err := f.AddSheet(sheetName)
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	writeRow := func(cells []string) {
		row := sheet.AddRow()
		for _, c := range cells {
			row.AddCell().SetString(c)
		}
	}
	writeRow(t.Header)
	for _, r := range t.Rows {
		writeRow(r)
	}

	return eris.Wrap(f.Write(w), "export: write workbook")
}

// SaveXLSX writes a table to a workbook file on disk.
func SaveXLSX(path string, t Table, sheetName string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}
	defer f.Close() //nolint:errcheck

	return WriteXLSX(f, t, sheetName)
}

// ReadXLSX reads the first sheet of a workbook back into a Table. The
// first row is the header; completely empty trailing rows are dropped.
func ReadXLSX(path string) (Table, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return Table{}, eris.Wrap(err, "export: open workbook")
	}
	if len(f.Sheets) == 0 {
		return Table{}, eris.Errorf("export: %s has no sheets", path)
	}

	sheet := f.Sheets[0]
	var rows [][]string
	for _, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		empty := true
		for j, cell := range row.Cells {
			cells[j] = cell.String()
			if cells[j] != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		rows = append(rows, cells)
	}

	if len(rows) == 0 {
		return Table{}, eris.Errorf("export: %s is empty", path)
	}
	return Table{Header: rows[0], Rows: rows[1:]}, nil
}

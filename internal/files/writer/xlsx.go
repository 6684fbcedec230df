package writer

import (
	"fmt"
	"io"

	"github.com/vvka-141/jointables/internal/table"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the combined table in XLSX output.
const SheetName = "joined"

// EncodeXLSX writes the table as a single-sheet workbook. Key components are
// text cells, sample values are numeric cells and missing cells are blank.
func EncodeXLSX(w io.Writer, c *table.Combined) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("failed to open sheet: %w", err)
	}

	hdr := header(c)
	values := make([]interface{}, len(hdr))
	for i, h := range hdr {
		values[i] = h
	}
	if err := sw.SetRow("A1", values); err != nil {
		return err
	}

	for r, row := range c.Rows {
		values := make([]interface{}, 0, len(hdr))
		for _, k := range row.Key {
			values = append(values, k)
		}
		for _, cell := range row.Cells {
			if cell.Valid {
				values = append(values, cell.Value)
			} else {
				values = append(values, nil)
			}
		}
		ref, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(ref, values); err != nil {
			return err
		}
	}

	if err := sw.Flush(); err != nil {
		return err
	}
	return f.Write(w)
}

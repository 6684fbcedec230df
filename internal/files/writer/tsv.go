package writer

import (
	"encoding/csv"
	"io"

	"github.com/vvka-141/jointables/internal/table"
)

// EncodeTSV writes the table as tab-separated text. Missing cells are
// written empty.
func EncodeTSV(w io.Writer, c *table.Combined) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := cw.Write(header(c)); err != nil {
		return err
	}

	record := make([]string, len(c.KeyColumns)+len(c.Samples))
	for _, row := range c.Rows {
		n := copy(record, row.Key)
		for i, cell := range row.Cells {
			if cell.Valid {
				record[n+i] = FormatValue(cell.Value)
			} else {
				record[n+i] = ""
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func header(c *table.Combined) []string {
	h := make([]string, 0, len(c.KeyColumns)+len(c.Samples))
	h = append(h, c.KeyColumns...)
	return append(h, c.Samples...)
}

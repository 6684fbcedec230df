package table

import (
	"fmt"
	"math"
	"sort"
)

// Row is one feature key and its cells, one per sample in Combined.Samples.
type Row struct {
	Key   Key
	Cells []Cell
}

// Combined is a multi-sample table keyed by composite feature key.
// A key may own several rows when an input repeated it.
type Combined struct {
	KeyColumns []string
	Samples    []string
	Rows       []Row

	index map[string][]int
}

// FromColumn builds a one-sample table from a sample column, keeping entry order.
func FromColumn(col *SampleColumn) *Combined {
	c := &Combined{
		KeyColumns: append([]string(nil), col.KeyColumns...),
		Samples:    []string{col.Name},
		Rows:       make([]Row, 0, len(col.Entries)),
	}
	for _, e := range col.Entries {
		c.Rows = append(c.Rows, Row{Key: e.Key, Cells: []Cell{e.Value}})
	}
	c.reindex()
	return c
}

// OuterJoin adds col as a new sample column. Keys present on either side are
// kept; cells with no source value are left missing. A key repeated on both
// sides yields one row per pairing.
func (c *Combined) OuterJoin(col *SampleColumn) error {
	if len(col.KeyColumns) != len(c.KeyColumns) {
		return fmt.Errorf("sample %q is keyed by %d column(s), table by %d", col.Name, len(col.KeyColumns), len(c.KeyColumns))
	}
	if c.SampleIndex(col.Name) >= 0 {
		return fmt.Errorf("sample %q is already present", col.Name)
	}

	values, order := col.group()
	width := len(c.Samples) + 1
	rows := make([]Row, 0, len(c.Rows)+len(order))

	for _, row := range c.Rows {
		matched, ok := values[row.Key.id()]
		if !ok {
			rows = append(rows, Row{Key: row.Key, Cells: extend(row.Cells, Missing)})
			continue
		}
		for _, v := range matched {
			rows = append(rows, Row{Key: row.Key, Cells: extend(row.Cells, v)})
		}
	}

	for _, key := range order {
		id := key.id()
		if _, ok := c.index[id]; ok {
			continue
		}
		for _, v := range values[id] {
			cells := make([]Cell, width)
			cells[width-1] = v
			rows = append(rows, Row{Key: key, Cells: cells})
		}
	}

	c.Samples = append(c.Samples, col.Name)
	c.Rows = rows
	c.reindex()
	return nil
}

func extend(cells []Cell, v Cell) []Cell {
	out := make([]Cell, len(cells)+1)
	copy(out, cells)
	out[len(cells)] = v
	return out
}

// SortRows orders rows by key (see keyOrder). Rows sharing a key keep
// their relative order.
func (c *Combined) SortRows() {
	order := newKeyOrder(c.Keys(), len(c.KeyColumns))
	sort.SliceStable(c.Rows, func(i, j int) bool {
		return order.compare(c.Rows[i].Key, c.Rows[j].Key) < 0
	})
	c.reindex()
}

// Fill replaces every missing cell with v and returns how many were replaced.
// A NaN v leaves the cells missing.
func (c *Combined) Fill(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	filled := 0
	for i := range c.Rows {
		cells := c.Rows[i].Cells
		for j := range cells {
			if !cells[j].Valid {
				cells[j] = Value(v)
				filled++
			}
		}
	}
	return filled
}

// SampleIndex returns the column position of a sample, or -1.
func (c *Combined) SampleIndex(name string) int {
	for i, s := range c.Samples {
		if s == name {
			return i
		}
	}
	return -1
}

// Get returns the cell for the first row with the given key in the named sample.
func (c *Combined) Get(key Key, sample string) (Cell, bool) {
	col := c.SampleIndex(sample)
	positions := c.index[key.id()]
	if col < 0 || len(positions) == 0 {
		return Missing, false
	}
	return c.Rows[positions[0]].Cells[col], true
}

// Keys returns the row keys in row order.
func (c *Combined) Keys() []Key {
	keys := make([]Key, len(c.Rows))
	for i, r := range c.Rows {
		keys[i] = r.Key
	}
	return keys
}

// Len returns the number of rows.
func (c *Combined) Len() int {
	return len(c.Rows)
}

func (c *Combined) reindex() {
	c.index = make(map[string][]int, len(c.Rows))
	for i, r := range c.Rows {
		id := r.Key.id()
		c.index[id] = append(c.index[id], i)
	}
}

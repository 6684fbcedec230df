package table

import (
	"math"
	"strconv"
	"strings"
)

// keySeparator joins key components into a map index. Feature identifiers
// are not expected to contain the ASCII unit separator.
const keySeparator = "\x1f"

// Key is a composite feature key: one value per feature-identifier column.
type Key []string

// id returns the string used to index the key in maps.
func (k Key) id() string {
	return strings.Join(k, keySeparator)
}

// String renders the key for messages, e.g. "(Escherichia coli, 562)".
func (k Key) String() string {
	if len(k) == 1 {
		return k[0]
	}
	return "(" + strings.Join(k, ", ") + ")"
}

// Equal reports whether two keys have identical components.
func (k Key) Equal(other Key) bool {
	if len(k) != len(other) {
		return false
	}
	for i := range k {
		if k[i] != other[i] {
			return false
		}
	}
	return true
}

// keyOrder sorts keys column by column, the way a data-frame index sorts
// by dtype. A column whose every value is a finite number compares
// numerically, with the text as tie-break ("1" < "1.0"); any other column
// compares as text. Both are total orders, so the result does not depend
// on input row order.
type keyOrder struct {
	numeric []bool
}

// newKeyOrder inspects keys to decide which columns are numeric.
func newKeyOrder(keys []Key, width int) keyOrder {
	numeric := make([]bool, width)
	for i := range numeric {
		numeric[i] = true
	}
	for _, k := range keys {
		for i := 0; i < width && i < len(k); i++ {
			if numeric[i] {
				_, numeric[i] = finite(k[i])
			}
		}
	}
	return keyOrder{numeric: numeric}
}

// compare returns -1, 0 or +1. Shorter keys sort first on a shared prefix.
func (o keyOrder) compare(a, b Key) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := o.compareComponent(i, a[i], b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

func (o keyOrder) compareComponent(col int, a, b string) int {
	if a == b {
		return 0
	}
	if col < len(o.numeric) && o.numeric[col] {
		fa, _ := finite(a)
		fb, _ := finite(b)
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
	}
	return strings.Compare(a, b)
}

// finite parses s as a number that is neither NaN nor infinite.
func finite(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

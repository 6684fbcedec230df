package loader

import (
	"bytes"
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vvka-141/jointables/internal/files/filesystem"
	"github.com/vvka-141/jointables/internal/table"
	"github.com/vvka-141/jointables/pkg/jointables"
)

// utf8BOM is stripped from the first header field when present.
const utf8BOM = "\ufeff"

// naTokens are the cell texts read as missing values. They match the
// defaults of common data-frame readers so tables produced by those tools
// load unchanged.
var naTokens = map[string]bool{
	"":         true,
	"#N/A":     true,
	"#N/A N/A": true,
	"#NA":      true,
	"-1.#IND":  true,
	"-1.#QNAN": true,
	"-NaN":     true,
	"-nan":     true,
	"1.#IND":   true,
	"1.#QNAN":  true,
	"<NA>":     true,
	"N/A":      true,
	"NA":       true,
	"NULL":     true,
	"NaN":      true,
	"None":     true,
	"n/a":      true,
	"nan":      true,
	"null":     true,
}

// Loader reads input tables into sample columns.
type Loader struct {
	fs filesystem.FileSystemProvider
}

// NewLoader creates a loader that reads through the given filesystem.
func NewLoader(fsProvider filesystem.FileSystemProvider) *Loader {
	return &Loader{fs: fsProvider}
}

// SampleName derives the sample key from a table path: the base name up to
// the first '.', so "runs/s1.kraken.tsv.gz" becomes "s1".
func SampleName(path string) string {
	base := filepath.Base(filepath.ToSlash(path))
	if i := strings.Index(base, "."); i >= 0 {
		return base[:i]
	}
	return base
}

// Load reads the table at path and returns its value column labeled with the
// sample name derived from path.
func (l *Loader) Load(path string, featureColumns []string, valueColumn string) (*table.SampleColumn, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("table '%s': %v: %w", path, err, jointables.ErrInputNotFound)
	}

	r, err := decompress(path, data)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	entries, err := Parse(r, featureColumns, valueColumn)
	if err != nil {
		return nil, fmt.Errorf("table '%s': %w", path, err)
	}

	return table.NewSampleColumn(SampleName(path), featureColumns, entries), nil
}

// Header returns the column names of the table at path.
func (l *Loader) Header(path string) ([]string, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("table '%s': %v: %w", path, err, jointables.ErrInputNotFound)
	}
	r, err := decompress(path, data)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	reader := newTSVReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("table '%s': no header row: %w", path, jointables.ErrMalformedTable)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	return header, nil
}

// decompress wraps data in a gzip reader when path ends in .gz.
func decompress(path string, data []byte) (io.ReadCloser, error) {
	r := bytes.NewReader(data)
	if !strings.EqualFold(filepath.Ext(path), ".gz") {
		return io.NopCloser(r), nil
	}
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("table '%s': invalid gzip stream: %v: %w", path, err, jointables.ErrMalformedTable)
	}
	return gz, nil
}

func newTSVReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.LazyQuotes = true
	return reader
}

// Parse reads tab-separated text with a header row and returns one entry per
// data row: the feature columns as the key and the value column as the cell.
func Parse(r io.Reader, featureColumns []string, valueColumn string) ([]table.Entry, error) {
	reader := newTSVReader(r)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("no header row: %w", jointables.ErrMalformedTable)
	}
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, jointables.ErrMalformedTable)
	}

	positions := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		if _, dup := positions[name]; !dup {
			positions[name] = i
		}
	}

	keyIdx := make([]int, len(featureColumns))
	for i, col := range featureColumns {
		pos, ok := positions[col]
		if !ok {
			return nil, fmt.Errorf("feature column %q not in header: %w", col, jointables.ErrMissingColumn)
		}
		keyIdx[i] = pos
	}
	valueIdx, ok := positions[valueColumn]
	if !ok {
		return nil, fmt.Errorf("value column %q not in header: %w", valueColumn, jointables.ErrMissingColumn)
	}

	var entries []table.Entry
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%v: %w", err, jointables.ErrMalformedTable)
		}

		key := make(table.Key, len(keyIdx))
		for i, pos := range keyIdx {
			key[i] = record[pos]
		}

		cell, err := parseCell(record[valueIdx])
		if err != nil {
			line, _ := reader.FieldPos(valueIdx)
			return nil, fmt.Errorf("line %d, column %q: %w", line, valueColumn, err)
		}
		entries = append(entries, table.Entry{Key: key, Value: cell})
	}

	return entries, nil
}

func parseCell(text string) (table.Cell, error) {
	trimmed := strings.TrimSpace(text)
	if naTokens[trimmed] {
		return table.Missing, nil
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return table.Missing, fmt.Errorf("%q is not a number: %w", text, jointables.ErrInvalidValue)
	}
	if math.IsNaN(v) {
		return table.Missing, nil
	}
	return table.Value(v), nil
}

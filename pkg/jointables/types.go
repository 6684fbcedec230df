package jointables

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// OutputFormat selects how the combined table is serialized.
type OutputFormat string

const (
	// FormatTSV writes tab-separated text with a header row.
	FormatTSV OutputFormat = "tsv"

	// FormatXLSX writes a single-sheet Excel workbook.
	FormatXLSX OutputFormat = "xlsx"
)

// ParseOutputFormat converts a user-supplied format name to an OutputFormat.
// The empty string yields the empty format, meaning "infer from the output path".
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "tsv", "tab", "txt":
		return FormatTSV, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (expected tsv or xlsx): %w", s, ErrInvalidConfig)
	}
}

// FormatFromPath infers the output format from a file extension.
// Anything other than .xlsx is written as TSV.
func FormatFromPath(path string) OutputFormat {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return FormatXLSX
	}
	return FormatTSV
}

// JoinConfig contains all parameters needed for a join operation.
type JoinConfig struct {
	// Tables are the input table paths, processed in this order
	Tables []string

	// FeatureColumns form the composite join key, in order
	FeatureColumns []string

	// ValueColumn is the column carried forward under each sample's name
	ValueColumn string

	// Outfile is the output path; an existing file is replaced
	Outfile string

	// FillValue replaces every missing cell after the join; NaN leaves them empty
	FillValue float64

	// Format selects the output serialization; empty means infer from Outfile
	Format OutputFormat

	// Strict rejects duplicate sample keys and duplicate feature keys
	Strict bool

	// Verbose enables detailed logging
	Verbose bool
}

// EffectiveFormat returns the configured format, or the one implied by Outfile.
func (c *JoinConfig) EffectiveFormat() OutputFormat {
	if c.Format != "" {
		return c.Format
	}
	return FormatFromPath(c.Outfile)
}

// Validate checks if the JoinConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *JoinConfig) Validate() error {
	var errs []error

	if len(c.Tables) == 0 {
		errs = append(errs, fmt.Errorf("at least one input table is required: %w", ErrInvalidConfig))
	}

	if len(c.FeatureColumns) == 0 {
		errs = append(errs, fmt.Errorf("at least one feature column is required: %w", ErrInvalidConfig))
	}
	for _, col := range c.FeatureColumns {
		if col == "" {
			errs = append(errs, fmt.Errorf("feature column names cannot be empty: %w", ErrInvalidConfig))
			break
		}
		if col == c.ValueColumn {
			errs = append(errs, fmt.Errorf("column %q cannot be both a feature column and the value column: %w", col, ErrInvalidConfig))
		}
	}

	if c.ValueColumn == "" {
		errs = append(errs, fmt.Errorf("value column is required: %w", ErrInvalidConfig))
	}

	if c.Outfile == "" {
		errs = append(errs, fmt.Errorf("outfile is required: %w", ErrInvalidConfig))
	}

	switch c.Format {
	case "", FormatTSV, FormatXLSX:
	default:
		errs = append(errs, fmt.Errorf("unsupported output format %q: %w", c.Format, ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// ParseFeatureColumns splits a comma-separated column list such as "name,taxid".
// Surrounding whitespace is trimmed from each name.
func ParseFeatureColumns(spec string) ([]string, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, fmt.Errorf("feature column list is empty: %w", ErrInvalidConfig)
	}

	parts := strings.Split(spec, FeatureColumnSeparator)
	columns := make([]string, 0, len(parts))
	for _, p := range parts {
		name := strings.TrimSpace(p)
		if name == "" {
			return nil, fmt.Errorf("feature column list %q contains an empty name: %w", spec, ErrInvalidConfig)
		}
		columns = append(columns, name)
	}
	return columns, nil
}

// Summary describes a completed join.
type Summary struct {
	// Samples are the output sample columns, in order
	Samples []string

	// Features is the number of rows in the output
	Features int

	// Filled is the number of cells that received the fill value
	Filled int

	// OutputPath is where the table was written
	OutputPath string

	// Format is the serialization that was used
	Format OutputFormat
}

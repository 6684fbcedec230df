package table

import (
	"fmt"

	"github.com/vvka-141/jointables/pkg/jointables"
)

// MergeOptions controls how Merge treats inputs the join cannot align cleanly.
type MergeOptions struct {
	// Strict rejects duplicate sample names and duplicate feature keys
	// instead of reporting them.
	Strict bool
}

// DuplicateFeatures lists feature keys repeated within one sample column.
type DuplicateFeatures struct {
	Sample string
	Keys   []Key
}

// MergeReport lists the irregularities Merge tolerated.
type MergeReport struct {
	// DuplicateSamples holds sample names derived by more than one input,
	// once per replaced column.
	DuplicateSamples []string

	// DuplicateFeatures holds, per sample, the keys that multiply rows in the join.
	DuplicateFeatures []DuplicateFeatures
}

// Clean reports whether nothing irregular was found.
func (r MergeReport) Clean() bool {
	return len(r.DuplicateSamples) == 0 && len(r.DuplicateFeatures) == 0
}

// Merge outer-joins sample columns in order into one table.
//
// When two columns share a sample name the later one's values replace the
// earlier's in the earlier's position. Keys only the earlier column had are
// kept with a missing cell, so the row keys stay the union of all inputs. With more than one column the rows are sorted
// by key; a single column is returned in its original row order.
func Merge(columns []*SampleColumn, opts MergeOptions) (*Combined, MergeReport, error) {
	var report MergeReport
	if len(columns) == 0 {
		return nil, report, fmt.Errorf("no tables to merge: %w", jointables.ErrInvalidConfig)
	}

	ordered := make([]*SampleColumn, 0, len(columns))
	position := make(map[string]int, len(columns))
	for _, col := range columns {
		if dups := col.DuplicateKeys(); len(dups) > 0 {
			if opts.Strict {
				return nil, report, fmt.Errorf("sample %q repeats feature key %s: %w", col.Name, dups[0], jointables.ErrDuplicateFeature)
			}
			report.DuplicateFeatures = append(report.DuplicateFeatures, DuplicateFeatures{Sample: col.Name, Keys: dups})
		}

		if i, ok := position[col.Name]; ok {
			if opts.Strict {
				return nil, report, fmt.Errorf("sample %q is derived from more than one table: %w", col.Name, jointables.ErrDuplicateSample)
			}
			report.DuplicateSamples = append(report.DuplicateSamples, col.Name)
			ordered[i] = overlay(ordered[i], col)
			continue
		}
		position[col.Name] = len(ordered)
		ordered = append(ordered, col)
	}

	combined := FromColumn(ordered[0])
	if len(ordered) == 1 {
		return combined, report, nil
	}
	for _, col := range ordered[1:] {
		if err := combined.OuterJoin(col); err != nil {
			return nil, report, err
		}
	}
	combined.SortRows()
	return combined, report, nil
}

// overlay returns later extended by one missing entry for every key that
// only earlier holds, in earlier's order.
func overlay(earlier, later *SampleColumn) *SampleColumn {
	seen := make(map[string]bool, len(later.Entries)+len(earlier.Entries))
	entries := make([]Entry, 0, len(later.Entries)+len(earlier.Entries))
	for _, e := range later.Entries {
		seen[e.Key.id()] = true
		entries = append(entries, e)
	}
	for _, e := range earlier.Entries {
		id := e.Key.id()
		if seen[id] {
			continue
		}
		seen[id] = true
		entries = append(entries, Entry{Key: e.Key, Value: Missing})
	}
	return NewSampleColumn(later.Name, later.KeyColumns, entries)
}

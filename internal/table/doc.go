// Package table holds the in-memory model of per-sample feature tables and
// the outer join that combines them.
//
// A SampleColumn is one input reduced to (feature key, value) entries under
// the sample's name. Merge folds an ordered list of sample columns into a
// Combined table whose rows are the union of all feature keys and whose
// columns are the sample names in first-seen order. Cells without a source
// value stay missing until Combined.Fill replaces them.
//
// The package performs no I/O; see the files/loader and files/writer
// packages for reading and writing tables.
package table

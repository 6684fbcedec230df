// Package writer serializes a combined table to its output file.
//
// Supported formats:
//   - TSV: key column(s) then one column per sample, header row first
//   - XLSX: the same layout on a single sheet named "joined"
//
// Output is written to a uniquely named temporary file next to the target
// and renamed over it once complete, so a failed run never leaves a
// truncated table at the output path.
package writer

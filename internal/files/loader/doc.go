// Package loader reads per-sample feature tables into table.SampleColumn values.
//
// The loader package is responsible for:
//   - Reading tab-separated tables with a header row, gzip-compressed when the
//     file name ends in .gz
//   - Deriving the sample name from the file name (text before the first '.')
//   - Selecting the feature-identifier column(s) as a composite key and the
//     value column as the sample's values
//   - Reporting missing files, missing columns and unparseable values with
//     the offending path, column and line
//
// Files are read through filesystem.FileSystemProvider so the loader can be
// exercised against an in-memory filesystem.
package loader

// Package scanner expands TABLE arguments into the table files to join.
//
// A file argument is passed through unchanged, so that a missing file is
// reported by the loader. A directory argument is walked recursively and
// replaced by the tab-separated tables it contains, sorted by path:
//   - *.tsv, *.txt and *.tab files, optionally gzip-compressed (*.gz)
//   - hidden files and directories are skipped
//   - the output file is skipped, so re-running a join does not pick up
//     its own previous result
//
// The scanner is filesystem-agnostic through the
// filesystem.FileSystemProvider interface, enabling both production use
// with the OS filesystem and testing with in-memory filesystems.
package scanner

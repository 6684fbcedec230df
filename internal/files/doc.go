// Package files provides file-related functionality organized into sub-packages.
//
// # Organization
//
//   - filesystem: Filesystem abstraction interfaces and implementations (OS and in-memory)
//   - scanner: Expands directory arguments into the table files they contain
//   - loader: Parses a tab-separated (optionally gzip-compressed) table into a sample column
//   - writer: Atomically writes the combined table as TSV or XLSX
//
// # Usage
//
//	import (
//	    "github.com/vvka-141/jointables/internal/files/filesystem"
//	    "github.com/vvka-141/jointables/internal/files/loader"
//	    "github.com/vvka-141/jointables/internal/files/scanner"
//	    "github.com/vvka-141/jointables/internal/files/writer"
//	)
//
//	fsProvider := filesystem.NewOSFileSystem()
//	tables, err := scanner.NewScanner(fsProvider).Expand(args, "joined_table.tsv")
//	column, err := loader.NewLoader(fsProvider).Load(tables[0], []string{"name"}, "fraction_total_reads")
//	err = writer.NewWriter(fsProvider).Write("joined_table.tsv", combined, jointables.FormatTSV)
package files

package scanner

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vvka-141/jointables/internal/files/filesystem"
	"github.com/vvka-141/jointables/pkg/jointables"
)

// tableSuffixes are the file name endings recognized as tables inside a directory.
var tableSuffixes = []string{
	".tsv", ".txt", ".tab",
	".tsv.gz", ".txt.gz", ".tab.gz",
}

// Scanner discovers table files from command line arguments.
type Scanner struct {
	fsProvider filesystem.FileSystemProvider
}

// NewScanner creates a new table scanner.
// Panics if fsProvider is nil.
func NewScanner(fsProvider filesystem.FileSystemProvider) *Scanner {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{fsProvider: fsProvider}
}

// Expand replaces every directory in args by the tables it contains.
// exclude names the output file, which is never returned from a directory.
// Order is preserved: arguments keep their command line order and the
// tables of one directory are sorted by path.
func (s *Scanner) Expand(args []string, exclude string) ([]string, error) {
	tables := make([]string, 0, len(args))
	for _, arg := range args {
		info, err := s.fsProvider.Stat(arg)
		if err != nil || !info.IsDir() {
			tables = append(tables, arg)
			continue
		}

		found, err := s.scanDirectory(arg, exclude)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			return nil, fmt.Errorf("directory '%s' contains no tables: %w", arg, jointables.ErrInputNotFound)
		}
		tables = append(tables, found...)
	}
	return tables, nil
}

// scanDirectory recursively collects table files below dir.
func (s *Scanner) scanDirectory(dir, exclude string) ([]string, error) {
	infos, err := s.fsProvider.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory '%s': %v: %w", dir, err, jointables.ErrInputNotFound)
	}

	var tables []string
	for _, info := range infos {
		name := info.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(dir, name)

		if info.IsDir() {
			nested, err := s.scanDirectory(path, exclude)
			if err != nil {
				return nil, err
			}
			tables = append(tables, nested...)
			continue
		}

		if !IsTableName(name) || samePath(path, exclude) {
			continue
		}
		tables = append(tables, path)
	}
	return tables, nil
}

// IsTableName reports whether a file name has a recognized table extension.
func IsTableName(name string) bool {
	lower := strings.ToLower(name)
	for _, suffix := range tableSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// samePath compares two paths after making them absolute.
func samePath(a, b string) bool {
	if b == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}


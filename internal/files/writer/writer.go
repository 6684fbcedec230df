package writer

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/vvka-141/jointables/internal/files/filesystem"
	"github.com/vvka-141/jointables/internal/table"
	"github.com/vvka-141/jointables/pkg/jointables"
)

// Writer replaces output files through a filesystem provider.
type Writer struct {
	fs    filesystem.FileSystemProvider
	newID func() string
}

// NewWriter creates a writer backed by the given filesystem.
func NewWriter(fsProvider filesystem.FileSystemProvider) *Writer {
	return &Writer{
		fs:    fsProvider,
		newID: uuid.NewString,
	}
}

// Write serializes c in the given format and atomically replaces path.
// An existing file at path is overwritten.
func (w *Writer) Write(path string, c *table.Combined, format jointables.OutputFormat) error {
	encode, err := encoderFor(format)
	if err != nil {
		return err
	}

	tmpPath := w.tempPath(path)
	f, err := w.fs.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("cannot write '%s': %v: %w", path, err, jointables.ErrOutputUnwritable)
	}

	bw := bufio.NewWriter(f)
	if err := encode(bw, c); err != nil {
		f.Close()
		w.fs.Remove(tmpPath)
		return fmt.Errorf("failed to encode '%s': %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		w.fs.Remove(tmpPath)
		return fmt.Errorf("cannot write '%s': %v: %w", path, err, jointables.ErrOutputUnwritable)
	}
	if err := f.Close(); err != nil {
		w.fs.Remove(tmpPath)
		return fmt.Errorf("cannot write '%s': %v: %w", path, err, jointables.ErrOutputUnwritable)
	}

	if err := w.fs.Rename(tmpPath, path); err != nil {
		w.fs.Remove(tmpPath)
		return fmt.Errorf("cannot replace '%s': %v: %w", path, err, jointables.ErrOutputUnwritable)
	}
	return nil
}

// tempPath names a hidden sibling of path, unique per call.
func (w *Writer) tempPath(path string) string {
	dir, base := filepath.Split(path)
	return filepath.Join(dir, "."+base+"."+w.newID()+".tmp")
}

func encoderFor(format jointables.OutputFormat) (func(io.Writer, *table.Combined) error, error) {
	switch format {
	case jointables.FormatTSV, "":
		return EncodeTSV, nil
	case jointables.FormatXLSX:
		return EncodeXLSX, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q: %w", format, jointables.ErrInvalidConfig)
	}
}

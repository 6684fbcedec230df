package filesystem

import (
	"bytes"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

type memoryEntry struct {
	content []byte
	info    *memoryFileInfo
}

// memoryWriter buffers writes and stores the content when closed
type memoryWriter struct {
	buf    bytes.Buffer
	path   string
	fs     *MemoryFileSystem
	closed bool
}

func (w *memoryWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, &fs.PathError{Op: "write", Path: w.path, Err: fs.ErrClosed}
	}
	return w.buf.Write(p)
}

func (w *memoryWriter) Close() error {
	if w.closed {
		return &fs.PathError{Op: "close", Path: w.path, Err: fs.ErrClosed}
	}
	w.closed = true
	w.fs.store(w.path, w.buf.Bytes())
	return nil
}

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Safe for concurrent use by multiple goroutines.
type MemoryFileSystem struct {
	mu       sync.Mutex
	entries  map[string]*memoryEntry // map of absolute path -> file or directory
	readOnly map[string]bool         // directories where Create fails
	root     string                  // root directory path
}

// NewMemoryFileSystem creates a new in-memory filesystem.
// The root path is normalized to use forward slashes for virtual filesystem consistency.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))

	mfs := &MemoryFileSystem{
		entries:  make(map[string]*memoryEntry),
		readOnly: make(map[string]bool),
		root:     root,
	}
	mfs.addDir(root)
	return mfs
}

// resolve maps a caller path onto an absolute virtual path
func (mfs *MemoryFileSystem) resolve(p string) string {
	p = filepath.ToSlash(p)
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

// AddFile adds a file to the in-memory filesystem, creating parent directories
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	absPath := mfs.resolve(filePath)
	mfs.ensureDirectoriesExist(absPath)
	mfs.put(absPath, []byte(content))
}

// AddDirectory adds an empty directory and its parents
func (mfs *MemoryFileSystem) AddDirectory(dirPath string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	absPath := mfs.resolve(dirPath)
	mfs.ensureDirectoriesExist(absPath)
	mfs.addDir(absPath)
}

// SetReadOnly makes Create fail with fs.ErrPermission inside dirPath
func (mfs *MemoryFileSystem) SetReadOnly(dirPath string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.readOnly[mfs.resolve(dirPath)] = true
}

// Paths returns every file path (not directories), sorted
func (mfs *MemoryFileSystem) Paths() []string {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	var paths []string
	for p, e := range mfs.entries {
		if !e.info.isDir {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}

func (mfs *MemoryFileSystem) addDir(absPath string) {
	if _, exists := mfs.entries[absPath]; exists {
		return
	}
	mfs.entries[absPath] = &memoryEntry{
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			mode:    0755 | fs.ModeDir,
			modTime: time.Now(),
			isDir:   true,
		},
	}
}

func (mfs *MemoryFileSystem) put(absPath string, content []byte) {
	mfs.entries[absPath] = &memoryEntry{
		content: append([]byte(nil), content...),
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			size:    int64(len(content)),
			mode:    0644,
			modTime: time.Now(),
		},
	}
}

func (mfs *MemoryFileSystem) store(absPath string, content []byte) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.put(absPath, content)
}

// ensureDirectoriesExist creates directory entries for all parent directories
func (mfs *MemoryFileSystem) ensureDirectoriesExist(filePath string) {
	dir := path.Dir(filePath)
	if dir == filePath {
		return
	}
	if _, exists := mfs.entries[dir]; exists {
		return
	}
	mfs.ensureDirectoriesExist(dir)
	mfs.addDir(dir)
}

// ReadFile implements FileSystemProvider.ReadFile
func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	e, exists := mfs.entries[mfs.resolve(filePath)]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: filePath, Err: fs.ErrNotExist}
	}
	if e.info.isDir {
		return nil, &fs.PathError{Op: "read", Path: filePath, Err: fs.ErrInvalid}
	}
	return append([]byte(nil), e.content...), nil
}

// Stat implements FileSystemProvider.Stat
func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	e, exists := mfs.entries[mfs.resolve(statPath)]
	if !exists {
		return nil, &fs.PathError{Op: "stat", Path: statPath, Err: fs.ErrNotExist}
	}
	return e.info, nil
}

// ReadDir implements FileSystemProvider.ReadDir
func (mfs *MemoryFileSystem) ReadDir(dirPath string) ([]FileInfo, error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absPath := mfs.resolve(dirPath)
	e, exists := mfs.entries[absPath]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: dirPath, Err: fs.ErrNotExist}
	}
	if !e.info.isDir {
		return nil, &fs.PathError{Op: "readdir", Path: dirPath, Err: fs.ErrInvalid}
	}

	var infos []FileInfo
	for p, child := range mfs.entries {
		if p != absPath && path.Dir(p) == absPath {
			infos = append(infos, child.info)
		}
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name() < infos[j].Name() })
	return infos, nil
}

// Create implements FileSystemProvider.Create.
// The file becomes visible when the returned writer is closed.
func (mfs *MemoryFileSystem) Create(filePath string) (io.WriteCloser, error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absPath := mfs.resolve(filePath)
	dir := path.Dir(absPath)
	parent, exists := mfs.entries[dir]
	if !exists || !parent.info.isDir {
		return nil, &fs.PathError{Op: "open", Path: filePath, Err: fs.ErrNotExist}
	}
	for d := dir; ; d = path.Dir(d) {
		if mfs.readOnly[d] {
			return nil, &fs.PathError{Op: "open", Path: filePath, Err: fs.ErrPermission}
		}
		if d == path.Dir(d) {
			break
		}
	}
	if e, ok := mfs.entries[absPath]; ok && e.info.isDir {
		return nil, &fs.PathError{Op: "open", Path: filePath, Err: fs.ErrInvalid}
	}
	return &memoryWriter{path: absPath, fs: mfs}, nil
}

// Rename implements FileSystemProvider.Rename
func (mfs *MemoryFileSystem) Rename(oldPath, newPath string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	src, dst := mfs.resolve(oldPath), mfs.resolve(newPath)
	e, exists := mfs.entries[src]
	if !exists {
		return &fs.PathError{Op: "rename", Path: oldPath, Err: fs.ErrNotExist}
	}
	if _, ok := mfs.entries[path.Dir(dst)]; !ok {
		return &fs.PathError{Op: "rename", Path: newPath, Err: fs.ErrNotExist}
	}
	if strings.HasPrefix(dst, src+"/") {
		return &fs.PathError{Op: "rename", Path: newPath, Err: fs.ErrInvalid}
	}
	delete(mfs.entries, src)
	e.info.name = path.Base(dst)
	mfs.entries[dst] = e
	return nil
}

// Remove implements FileSystemProvider.Remove
func (mfs *MemoryFileSystem) Remove(filePath string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absPath := mfs.resolve(filePath)
	if _, exists := mfs.entries[absPath]; !exists {
		return &fs.PathError{Op: "remove", Path: filePath, Err: fs.ErrNotExist}
	}
	delete(mfs.entries, absPath)
	return nil
}

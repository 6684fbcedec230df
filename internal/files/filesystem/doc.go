// Package filesystem provides filesystem abstraction interfaces and implementations.
//
// The loader reads input tables and the writer replaces the output file
// through FileSystemProvider, enabling tests to run against an in-memory
// implementation while production code uses the OS filesystem.
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing
//
// Errors for absent paths wrap fs.ErrNotExist and errors for read-only
// locations wrap fs.ErrPermission in both implementations, so callers can
// classify them with errors.Is.
package filesystem

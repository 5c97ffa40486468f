// Package filesystem provides filesystem abstraction interfaces and implementations.
//
// This package defines interfaces for file and directory access, enabling
// testability through in-memory implementations while maintaining compatibility
// with the OS filesystem.
//
// Key interfaces:
//   - FileSystemProvider: Stat, directory listing and file opening
//   - File: An individual file with metadata and a lazily-invoked opener
//   - FileInfo: File metadata similar to os.FileInfo
//
// Implementations:
//   - OSFileSystem: Production implementation using OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing
//   - FSProvider: Any io/fs.FS, such as embed.FS or a zip archive
package filesystem

package filesystem

import (
	"io"
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
// This provides compatibility with the fs.FS ecosystem while maintaining
// a stable local type for our abstraction layer.
type FileInfo = fs.FileInfo

// File represents an individual file with its metadata and a content opener.
// A File never holds an open stream; every Open call starts a new one.
type File interface {
	// Path returns the provider path of the file
	Path() string

	// Info returns file metadata captured when the File was obtained
	Info() FileInfo

	// Open opens a fresh stream over the file content
	Open() (io.ReadCloser, error)
}

// FileSystemProvider gives access to files and directories under one namespace.
//
// Missing paths are reported with errors that satisfy errors.Is(err, fs.ErrNotExist).
type FileSystemProvider interface {
	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)

	// File returns a handle to the regular file at path without opening it
	File(path string) (File, error)

	// ReadDir returns the entries of the directory at path, sorted by name
	ReadDir(path string) ([]File, error)

	// Open opens the file at path for reading
	Open(path string) (io.ReadCloser, error)
}

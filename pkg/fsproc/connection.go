package fsproc

import (
	"context"
	"io"
)

// FileHandle references one resolved file. It exposes metadata and a way to
// open the content without holding a stream open.
type FileHandle interface {
	// Name returns the base name of the file.
	Name() string

	// Length returns the file size in bytes as known at resolution time.
	Length() int64

	// Open opens a fresh stream over the file content on every call.
	Open() (io.ReadCloser, error)
}

// Connection resolves path arguments to files. One Connection serves exactly
// one execution and is released by the execution's Close.
type Connection interface {
	// Resolve turns a path or path pattern into an ordered list of files.
	// An empty result is not an error.
	Resolve(ctx context.Context, pattern string) ([]FileHandle, error)

	// Close releases the connection. Failures are reported but callers
	// treat them as non-fatal.
	Close() error
}

// ConnectionFactory hands out connections, one per execution.
type ConnectionFactory interface {
	// GetConnection acquires a new connection. The caller owns it.
	GetConnection(ctx context.Context) (Connection, error)
}

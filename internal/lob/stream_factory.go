package lob

import (
	"fmt"
	"io"

	"github.com/vvka-141/fsproc/pkg/fsproc"
)

// StreamFactory opens streams over one file on demand.
// It holds no open resources between calls.
type StreamFactory struct {
	handle fsproc.FileHandle
	length int64
}

// NewStreamFactory binds a factory to handle with its length taken from the
// handle's metadata. The handle is not opened.
func NewStreamFactory(handle fsproc.FileHandle) *StreamFactory {
	return &StreamFactory{
		handle: handle,
		length: handle.Length(),
	}
}

// Name returns the bound file's name.
func (f *StreamFactory) Name() string { return f.handle.Name() }

// Length returns the byte length known at construction time.
func (f *StreamFactory) Length() int64 { return f.length }

// Open opens a new stream over the file.
func (f *StreamFactory) Open() (io.ReadCloser, error) {
	rc, err := f.handle.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %w", f.handle.Name(), fsproc.ErrContentUnavailable, err)
	}
	return rc, nil
}

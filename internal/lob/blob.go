package lob

import (
	"io"

	"github.com/vvka-141/fsproc/pkg/fsproc"
)

// Blob is a binary large object over one file.
type Blob struct {
	factory *StreamFactory
}

// NewBlob wraps factory as a binary large object.
func NewBlob(factory *StreamFactory) *Blob {
	return &Blob{factory: factory}
}

func (b *Blob) Kind() fsproc.LobKind { return fsproc.KindBlob }

// Length returns the content length in bytes.
func (b *Blob) Length() int64 { return b.factory.Length() }

// Open returns a reader over the raw file bytes.
func (b *Blob) Open() (io.ReadCloser, error) {
	return b.factory.Open()
}

// Factory returns the stream factory backing the blob.
func (b *Blob) Factory() *StreamFactory { return b.factory }

var _ fsproc.LargeObject = (*Blob)(nil)

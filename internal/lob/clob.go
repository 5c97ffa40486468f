package lob

import (
	"io"

	"github.com/vvka-141/fsproc/pkg/fsproc"
)

// Clob is a character large object over one file. Content is decoded from
// the source encoding into UTF-8 while it is read.
type Clob struct {
	factory  *StreamFactory
	encoding EncodingSource
}

// NewClob wraps factory as a character large object. encoding is consulted
// on every Open, so a changed setting applies to streams opened afterwards.
func NewClob(factory *StreamFactory, encoding EncodingSource) *Clob {
	return &Clob{factory: factory, encoding: encoding}
}

func (c *Clob) Kind() fsproc.LobKind { return fsproc.KindClob }

// Length returns -1: the character count is unknown until the content is decoded.
func (c *Clob) Length() int64 { return -1 }

// ByteLength returns the length of the underlying file in bytes.
func (c *Clob) ByteLength() int64 { return c.factory.Length() }

// Encoding returns the encoding name a stream opened now would use.
func (c *Clob) Encoding() string { return c.encoding() }

// Open returns a UTF-8 reader over the decoded file content.
func (c *Clob) Open() (io.ReadCloser, error) {
	enc, err := LookupEncoding(c.encoding())
	if err != nil {
		return nil, err
	}

	rc, err := c.factory.Open()
	if err != nil {
		return nil, err
	}

	return &decodingReader{
		Reader: enc.NewDecoder().Reader(rc),
		closer: rc,
	}, nil
}

// Factory returns the stream factory backing the clob.
func (c *Clob) Factory() *StreamFactory { return c.factory }

type decodingReader struct {
	io.Reader
	closer io.Closer
}

func (r *decodingReader) Close() error { return r.closer.Close() }

var _ fsproc.LargeObject = (*Clob)(nil)

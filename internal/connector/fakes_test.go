package connector

import (
	"bytes"
	"context"
	"io"

	"github.com/vvka-141/fsproc/pkg/fsproc"
)

// instrumentedHandle counts how often its content is opened.
type instrumentedHandle struct {
	name    string
	content []byte
	opens   int
}

func newHandle(name, content string) *instrumentedHandle {
	return &instrumentedHandle{name: name, content: []byte(content)}
}

func (h *instrumentedHandle) Name() string  { return h.name }
func (h *instrumentedHandle) Length() int64 { return int64(len(h.content)) }

func (h *instrumentedHandle) Open() (io.ReadCloser, error) {
	h.opens++
	return io.NopCloser(bytes.NewReader(h.content)), nil
}

// fakeConnection returns a fixed resolution and records calls.
type fakeConnection struct {
	files      []fsproc.FileHandle
	resolveErr error
	closeErr   error

	resolved   []string
	closeCalls int
}

func newFakeConnection(handles ...*instrumentedHandle) *fakeConnection {
	files := make([]fsproc.FileHandle, 0, len(handles))
	for _, h := range handles {
		files = append(files, h)
	}
	return &fakeConnection{files: files}
}

func (c *fakeConnection) Resolve(_ context.Context, pattern string) ([]fsproc.FileHandle, error) {
	c.resolved = append(c.resolved, pattern)
	if c.resolveErr != nil {
		return nil, c.resolveErr
	}
	return c.files, nil
}

func (c *fakeConnection) Close() error {
	c.closeCalls++
	return c.closeErr
}

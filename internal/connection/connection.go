package connection

import (
	"context"
	"io"
	"sync"

	"github.com/vvka-141/fsproc/internal/files/filesystem"
	"github.com/vvka-141/fsproc/internal/files/resolver"
	"github.com/vvka-141/fsproc/pkg/fsproc"
)

// Connection resolves locations under one root. Safe for concurrent use.
type Connection struct {
	config   Config
	root     string
	resolver *resolver.Resolver
	closer   io.Closer
	logger   fsproc.Logger

	mu     sync.Mutex
	closed bool
}

var _ fsproc.Connection = (*Connection)(nil)

func newConnection(cfg Config, root string, provider filesystem.FileSystemProvider, closer io.Closer, logger fsproc.Logger) *Connection {
	return &Connection{
		config: cfg,
		root:   root,
		resolver: resolver.NewResolverWithOptions(provider, resolver.Options{
			ExceptionIfFileNotFound: cfg.ExceptionIfFileNotFound,
		}),
		closer: closer,
		logger: logger,
	}
}

// Root returns the directory relative locations are anchored at.
func (c *Connection) Root() string { return c.root }

// Resolve translates location and returns the matching files in listing order.
func (c *Connection) Resolve(ctx context.Context, location string) ([]fsproc.FileHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return nil, fsproc.ErrConnectionClosed
	}

	target, err := c.config.translate(c.root, location)
	if err != nil {
		return nil, err
	}
	c.logger.Verbose("resolving %q as %s", location, target)

	return c.resolver.Resolve(target)
}

// Close releases the archive backing the connection, if any. Only the first
// call has an effect.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	if c.closer != nil {
		return c.closer.Close()
	}
	return nil
}

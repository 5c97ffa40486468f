package connection

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/vvka-141/fsproc/internal/files/filesystem"
	"github.com/vvka-141/fsproc/internal/logging"
	"github.com/vvka-141/fsproc/internal/retry"
	"github.com/vvka-141/fsproc/pkg/fsproc"
)

// Factory creates a Connection per execution.
type Factory struct {
	config   Config
	provider filesystem.FileSystemProvider
	retrier  *retry.Executor
	logger   fsproc.Logger
}

var _ fsproc.ConnectionFactory = (*Factory)(nil)

// Option configures a Factory.
type Option func(*Factory)

// WithProvider serves files from p instead of the operating system.
// ParentDirectory is then interpreted inside p.
func WithProvider(p filesystem.FileSystemProvider) Option {
	return func(f *Factory) { f.provider = p }
}

// WithLogger sets the logger used for connection diagnostics.
func WithLogger(l fsproc.Logger) Option {
	return func(f *Factory) { f.logger = l }
}

// WithRetry replaces the executor used while reaching the parent directory.
func WithRetry(e *retry.Executor) Option {
	return func(f *Factory) { f.retrier = e }
}

// NewFactory returns a Factory for cfg. Transient filesystem errors are
// retried with the default backoff unless WithRetry says otherwise.
func NewFactory(cfg Config, opts ...Option) *Factory {
	f := &Factory{
		config: cfg,
		logger: logging.NewNullLogger(),
		retrier: retry.NewExecutor(
			retry.NewFilesystemErrorClassifier(),
			retry.NewExponentialBackoff(fsproc.DefaultRetryMaxAttempts),
		),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		panic("logger cannot be nil")
	}
	if f.retrier == nil {
		panic("retry executor cannot be nil")
	}
	return f
}

// Config returns the configuration the factory was built with.
func (f *Factory) Config() Config { return f.config }

// GetConnection checks that the parent directory is reachable and returns a
// connection over it.
func (f *Factory) GetConnection(ctx context.Context) (fsproc.Connection, error) {
	if err := f.config.Validate(); err != nil {
		return nil, err
	}

	provider, root, closer, err := f.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", fsproc.ErrConnectionFailed, f.config.ParentDirectory, err)
	}

	err = f.retrier.WithLogger(f.logger, "stat "+root).Execute(ctx, func(ctx context.Context) error {
		info, err := provider.Stat(root)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory", root)
		}
		return nil
	})
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, fmt.Errorf("%w: %s: %w", fsproc.ErrConnectionFailed, f.config.ParentDirectory, err)
	}

	f.logger.Verbose("connected to %s", f.config.ParentDirectory)
	return newConnection(f.config, root, provider, closer, f.logger), nil
}

// open picks the provider backing a new connection and the root inside it.
func (f *Factory) open(ctx context.Context) (filesystem.FileSystemProvider, string, io.Closer, error) {
	if f.provider != nil {
		return f.provider, filepath.Clean(f.config.ParentDirectory), nil, nil
	}

	if f.config.IsArchive() {
		var archive *zip.ReadCloser
		err := f.retrier.WithLogger(f.logger, "open "+f.config.ParentDirectory).Execute(ctx, func(context.Context) error {
			var err error
			archive, err = zip.OpenReader(f.config.ParentDirectory)
			return err
		})
		if err != nil {
			return nil, "", nil, err
		}
		return filesystem.NewFSProvider(archive), string(filepath.Separator), archive, nil
	}

	root, err := filepath.Abs(f.config.ParentDirectory)
	if err != nil {
		return nil, "", nil, err
	}
	return filesystem.NewOSFileSystem(), root, nil, nil
}

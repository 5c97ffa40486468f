package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vvka-141/fsproc/internal/config"
	"github.com/vvka-141/fsproc/internal/connection"
	"github.com/vvka-141/fsproc/internal/connector"
	"github.com/vvka-141/fsproc/internal/logging"
	"github.com/vvka-141/fsproc/internal/retry"
	"github.com/vvka-141/fsproc/internal/services"
	"github.com/vvka-141/fsproc/pkg/fsproc"
)

// settings is the merged view of flags, environment, fsproc.yaml and defaults.
type settings struct {
	project *config.ProjectConfig
	timeout time.Duration
	logger  fsproc.Logger
}

// loadSettings resolves configuration with precedence flag > env > file > default.
// Command-specific flags are applied by the caller afterwards.
func loadSettings(stderr io.Writer) (*settings, error) {
	logger := logging.NewConsoleLoggerWithWriter(globalFlags.verbose, stderr)

	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}

	path := globalFlags.configPath
	explicit := path != ""
	if !explicit {
		path = config.ConfigFileName
	}

	project, err := config.Load(path)
	switch {
	case errors.Is(err, config.ErrConfigNotFound) && explicit:
		return nil, fmt.Errorf("%w: config file %s not found", fsproc.ErrInvalidConfig, path)
	case errors.Is(err, config.ErrConfigNotFound):
		logger.Verbose("No %s found, using defaults", config.ConfigFileName)
		project = &config.ProjectConfig{}
	case err != nil:
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	default:
		logger.Verbose("Loaded configuration from %s", path)
	}
	project.ApplyEnv(nil)

	timeout := globalFlags.timeout
	if timeout <= 0 {
		timeout, err = project.TimeoutOr(fsproc.DefaultCallTimeout)
		if err != nil {
			return nil, err
		}
	}

	return &settings{project: project, timeout: timeout, logger: logger}, nil
}

// newInvoker wires the file connection, the procedure connector and the
// call engine for s.
func (s *settings) newInvoker() (*services.Invoker, error) {
	if s.project.Root == "" {
		s.project.Root = "."
	}

	backoff, err := s.project.Backoff()
	if err != nil {
		return nil, err
	}
	retrier := retry.NewExecutor(retry.NewFilesystemErrorClassifier(), backoff).
		WithLogger(s.logger, "open file root")

	connections := connection.NewFactory(s.project.Connection(),
		connection.WithLogger(s.logger),
		connection.WithRetry(retrier),
	)

	executions := connector.NewExecutionFactory(s.logger)
	if err := executions.SetEncoding(s.project.Encoding); err != nil {
		return nil, err
	}

	s.logger.Verbose("Root: %s, encoding: %s", s.project.Root, executions.Encoding())
	return services.NewInvoker(connections, executions, s.logger), nil
}

// commandContext bounds a command by timeout and cancels it on SIGINT/SIGTERM.
func commandContext(timeout time.Duration, stderr io.Writer) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(stderr, "\n[INTERRUPT] Received interrupt signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}

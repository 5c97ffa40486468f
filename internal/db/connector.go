package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/fsproc/internal/retry"
	"github.com/vvka-141/fsproc/pkg/fsproc"
)

// Pool sizing for a single loader writing batches.
const (
	DefaultMaxConns        = 4
	DefaultMinConns        = 1
	DefaultMaxConnIdleTime = 5 * time.Minute
)

func configurePool(poolConfig *pgxpool.Config, logger fsproc.Logger) {
	poolConfig.MaxConns = DefaultMaxConns
	poolConfig.MinConns = DefaultMinConns
	poolConfig.MaxConnIdleTime = DefaultMaxConnIdleTime
	poolConfig.ConnConfig.OnNotice = func(_ *pgconn.PgConn, notice *pgconn.Notice) {
		logger.Verbose("postgres %s: %s", strings.ToLower(notice.Severity), notice.Message)
	}
}

// Connector opens pools for one connection string.
type Connector struct {
	connString    string
	logger        fsproc.Logger
	retryExecutor *retry.Executor
}

// NewConnector returns a Connector retrying transient failures with the
// default backoff.
func NewConnector(connString string, logger fsproc.Logger) *Connector {
	if logger == nil {
		panic("logger cannot be nil")
	}
	strategy := retry.NewExponentialBackoff(fsproc.DefaultRetryMaxAttempts,
		retry.WithInitialDelay(fsproc.DefaultRetryInitialDelay),
		retry.WithMaxDelay(fsproc.DefaultRetryMaxDelay),
	)
	return &Connector{
		connString:    connString,
		logger:        logger,
		retryExecutor: retry.NewExecutor(retry.NewPostgreSQLErrorClassifier(), strategy),
	}
}

// WithRetry returns a copy of c using e for connection attempts.
func (c *Connector) WithRetry(e *retry.Executor) *Connector {
	clone := *c
	clone.retryExecutor = e
	return &clone
}

// Connect opens and pings a pool.
func (c *Connector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(c.connString)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse connection string: %w", fsproc.ErrInvalidConfig, err)
	}
	configurePool(poolConfig, c.logger)

	target := Describe(&poolConfig.ConnConfig.Config)
	c.logger.Verbose("connecting to %s", target)

	var pool *pgxpool.Pool
	err = c.retryExecutor.WithLogger(c.logger, "connect "+target).Execute(ctx, func(ctx context.Context) error {
		p, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return err
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return err
		}
		pool = p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", fsproc.ErrConnectionFailed, wrapConnectionError(err, target))
	}
	return pool, nil
}

// Describe renders user@host:port/database without the password.
func Describe(cfg *pgconn.Config) string {
	if cfg == nil {
		return ""
	}
	return fmt.Sprintf("%s@%s:%d/%s", cfg.User, cfg.Host, cfg.Port, cfg.Database)
}

// wrapConnectionError adds a hint for the failures users can fix themselves.
func wrapConnectionError(err error, target string) error {
	msg := strings.ToLower(err.Error())

	var hint string
	switch {
	case strings.Contains(msg, "connection refused"):
		hint = "is PostgreSQL running and listening on that host and port?"
	case strings.Contains(msg, "no such host"):
		hint = "check the host name in the connection string"
	case strings.Contains(msg, "password authentication failed"):
		hint = "check the user and password (or $PGPASSWORD / ~/.pgpass)"
	case strings.Contains(msg, "does not exist"):
		hint = "create the database first, the loader only creates its table"
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "timed out"):
		hint = "the server did not answer in time"
	}

	if hint == "" {
		return fmt.Errorf("failed to connect to %s: %w", target, err)
	}
	return fmt.Errorf("failed to connect to %s (%s): %w", target, hint, err)
}

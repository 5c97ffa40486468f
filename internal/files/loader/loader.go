package loader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/vvka-141/fsproc/internal/checksum"
	"github.com/vvka-141/fsproc/pkg/fsproc"
)

// DB is the subset of *pgxpool.Pool and *pgx.Conn the loader needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// Loader writes rows into one table. Not safe for concurrent use.
type Loader struct {
	db       DB
	table    pgx.Identifier
	hasher   checksum.Calculator
	logger   fsproc.Logger
	now      func() time.Time
	batch    *pgx.Batch
	names    []string
	maxBytes int64
}

// Option configures a Loader.
type Option func(*Loader)

// WithClock overrides the loaded_at timestamp source.
func WithClock(now func() time.Time) Option {
	return func(l *Loader) { l.now = now }
}

// WithMaxContentBytes rejects rows whose content is larger than n bytes.
// Zero means no limit.
func WithMaxContentBytes(n int64) Option {
	return func(l *Loader) { l.maxBytes = n }
}

// NewLoader returns a loader for table, which may be schema qualified.
func NewLoader(db DB, table string, logger fsproc.Logger, opts ...Option) (*Loader, error) {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if table == "" {
		table = fsproc.DefaultLoadTable
	}
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("%w: invalid table name %q", fsproc.ErrInvalidConfig, table)
	}

	l := &Loader{
		db:     db,
		table:  pgx.Identifier(strings.Split(table, ".")),
		hasher: checksum.New(),
		logger: logger,
		now:    time.Now,
		batch:  &pgx.Batch{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Table returns the quoted table name.
func (l *Loader) Table() string { return l.table.Sanitize() }

// EnsureTable creates the target table if it does not exist.
func (l *Loader) EnsureTable(ctx context.Context) error {
	sql := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	name          text        NOT NULL,
	kind          text        NOT NULL,
	content_text  text,
	content_bytes bytea,
	sha256        text        NOT NULL,
	loaded_at     timestamptz NOT NULL
)`, l.Table())

	if _, err := l.db.Exec(ctx, sql); err != nil {
		return fmt.Errorf("failed to create table %s: %w", l.Table(), err)
	}
	return nil
}

// Add reads the row's content and queues its insert. It has the shape of a
// row visitor so it can be handed to an invoker directly.
func (l *Loader) Add(row *fsproc.Row) error {
	content, err := l.read(row.Content)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", row.Name, err)
	}

	var text *string
	var raw []byte
	if row.Content.Kind() == fsproc.KindClob {
		// PostgreSQL text cannot hold NUL.
		if bytes.IndexByte(content, 0) >= 0 {
			return fmt.Errorf("%w: %s contains NUL bytes and cannot be stored as text, load it with %s",
				fsproc.ErrContentUnavailable, row.Name, fsproc.ProcedureFetchFiles)
		}
		s := string(content)
		text = &s
	} else {
		raw = content
	}

	insertSQL := fmt.Sprintf(`INSERT INTO %s (name, kind, content_text, content_bytes, sha256, loaded_at) VALUES ($1, $2, $3, $4, $5, $6)`, l.Table())
	l.batch.Queue(insertSQL, row.Name, row.Content.Kind().String(), text, raw, l.hasher.CalculateRaw(content), l.now().UTC())
	l.names = append(l.names, row.Name)
	return nil
}

func (l *Loader) read(lo fsproc.LargeObject) ([]byte, error) {
	rc, err := lo.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	if l.maxBytes <= 0 {
		return io.ReadAll(rc)
	}
	content, err := io.ReadAll(io.LimitReader(rc, l.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(content)) > l.maxBytes {
		return nil, fmt.Errorf("content exceeds %d bytes", l.maxBytes)
	}
	return content, nil
}

// Pending returns the number of queued rows.
func (l *Loader) Pending() int { return len(l.names) }

// Flush sends all queued inserts as one batch and returns how many were
// written. The queue is emptied whether or not the batch succeeds.
func (l *Loader) Flush(ctx context.Context) (int, error) {
	if len(l.names) == 0 {
		return 0, nil
	}

	batch, names := l.batch, l.names
	l.batch, l.names = &pgx.Batch{}, nil

	results := l.db.SendBatch(ctx, batch)
	for i := range names {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return i, fmt.Errorf("failed to insert %s: %w", names[i], err)
		}
	}
	if err := results.Close(); err != nil {
		return len(names), fmt.Errorf("failed to complete batch insert: %w", err)
	}

	l.logger.Verbose("loaded %d row(s) into %s", len(names), l.Table())
	return len(names), nil
}

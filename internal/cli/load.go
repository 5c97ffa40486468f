package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vvka-141/fsproc/internal/config"
	"github.com/vvka-141/fsproc/internal/db"
	"github.com/vvka-141/fsproc/internal/files/loader"
	"github.com/vvka-141/fsproc/internal/services"
	"github.com/vvka-141/fsproc/pkg/fsproc"
)

var loadCmd = &cobra.Command{
	Use:   "load <procedure> <path>",
	Short: "Run a file procedure and insert its rows into PostgreSQL",
	Long: `Load runs fetchTextFiles or fetchFiles and inserts every row into a
PostgreSQL table, creating the table if needed. Text rows land in
content_text, binary rows in content_bytes; each row records its SHA-256.

Password Authentication:
  Passwords are never accepted as a flag. Use $PGPASSWORD, ~/.pgpass, or
  put them in the connection string held by $FSPROC_PG_CONNECTION.

Examples:
  fsproc load fetchTextFiles 'inbox/*.csv' --connection postgresql://localhost/files
  fsproc load fetchFiles scans --table scans_raw --batch-size 50`,
	Args: cobra.ExactArgs(2),
	RunE: runLoad,
}

type loadFlagValues struct {
	root       string
	encoding   string
	connection string
	table      string
	batchSize  int
}

var loadFlags loadFlagValues

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().StringVar(&loadFlags.root, "root", "",
		"Directory or .zip archive paths are resolved against")
	loadCmd.Flags().StringVar(&loadFlags.encoding, "encoding", "",
		"Character encoding of text files (default UTF-8)")
	loadCmd.Flags().StringVar(&loadFlags.connection, "connection", "",
		"PostgreSQL connection string\n"+
			"Precedence: --connection > $FSPROC_PG_CONNECTION > postgres.connection in fsproc.yaml")
	loadCmd.Flags().StringVar(&loadFlags.table, "table", "",
		"Target table, optionally schema-qualified (default "+fsproc.DefaultLoadTable+")")
	loadCmd.Flags().IntVar(&loadFlags.batchSize, "batch-size", 100,
		"Rows sent per batch")
}

func runLoad(cmd *cobra.Command, args []string) error {
	if loadFlags.batchSize <= 0 {
		return fmt.Errorf("%w: --batch-size must be positive", fsproc.ErrInvalidConfig)
	}

	s, err := loadSettings(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if loadFlags.root != "" {
		s.project.Root = loadFlags.root
	}
	if loadFlags.encoding != "" {
		s.project.Encoding = loadFlags.encoding
	}
	connString := s.project.Postgres.Connection
	if loadFlags.connection != "" {
		connString = loadFlags.connection
	}
	if connString == "" {
		return fmt.Errorf("%w: no PostgreSQL connection string\n\nTip: pass --connection or set $%s",
			fsproc.ErrInvalidConfig, config.EnvPGConnection)
	}
	table := s.project.Postgres.Table
	if loadFlags.table != "" {
		table = loadFlags.table
	}

	invoker, err := s.newInvoker()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(s.timeout, cmd.ErrOrStderr())
	defer cancel()

	pool, err := db.NewConnector(connString, s.logger).Connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	l, err := loader.NewLoader(pool, table, s.logger)
	if err != nil {
		return err
	}
	if err := l.EnsureTable(ctx); err != nil {
		return err
	}

	inserted, err := loadRows(ctx, invoker, fsproc.NewCall(args[0], args[1]), l, loadFlags.batchSize)
	if err != nil {
		return err
	}
	s.logger.Info("Loaded %d row(s) into %s", inserted, l.Table())
	return nil
}

// loadRows streams call into l, flushing every batchSize rows.
func loadRows(ctx context.Context, invoker *services.Invoker, call fsproc.Call, l *loader.Loader, batchSize int) (int, error) {
	inserted := 0
	_, err := invoker.Call(ctx, call, func(row *fsproc.Row) error {
		if err := l.Add(row); err != nil {
			return err
		}
		if l.Pending() < batchSize {
			return nil
		}
		n, err := l.Flush(ctx)
		inserted += n
		return err
	})
	if err != nil {
		return inserted, fmt.Errorf("load failed after %d row(s): %w", inserted, err)
	}

	n, err := l.Flush(ctx)
	inserted += n
	if err != nil {
		return inserted, fmt.Errorf("load failed after %d row(s): %w", inserted, err)
	}
	return inserted, nil
}

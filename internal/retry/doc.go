// Package retry re-runs operations that fail with transient errors.
//
// An Executor pairs an fsproc.ErrorClassifier, which decides whether a failure
// is worth another attempt, with an fsproc.BackoffStrategy, which decides how
// long to wait before it:
//
//	executor := retry.NewExecutor(
//	    retry.NewFilesystemErrorClassifier(),
//	    retry.NewExponentialBackoff(3),
//	)
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    _, err := provider.Stat(root)
//	    return err
//	})
//
// Two classifiers ship with the package. FilesystemErrorClassifier covers the
// errno values network and removable filesystems return while they recover.
// PostgreSQLErrorClassifier covers connection and resource errors reported by
// pgx when loading rows into PostgreSQL.
package retry

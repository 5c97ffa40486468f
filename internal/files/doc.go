// Package files groups the file-facing sub-packages.
//
//   - filesystem: filesystem abstraction (OS, in-memory, io/fs backed)
//   - resolver: turns a location or wildcard pattern into file handles
//   - loader: writes procedure rows into a PostgreSQL table
//
// # Usage
//
//	provider := filesystem.NewOSFileSystem()
//	handles, err := resolver.NewResolver(provider).Resolve("/srv/files/*.txt")
//
//	l, err := loader.NewLoader(pool, "fsproc_file", logger)
//	err = l.EnsureTable(ctx)
package files

// Package loader copies procedure rows into a PostgreSQL table.
//
// Rows are buffered as queued statements of a single pgx.Batch; content is
// read from each row's large object when the row is added and sent when Flush
// is called. Text rows land in content_text, binary rows in content_bytes,
// and every row records the SHA-256 of its content.
package loader

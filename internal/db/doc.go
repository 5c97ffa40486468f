// Package db opens pgx connection pools for the PostgreSQL sink, retrying
// transient connection failures.
package db

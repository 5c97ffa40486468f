package retry

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"syscall"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPostgreSQLErrorClassifier_IsTransient(t *testing.T) {
	c := NewPostgreSQLErrorClassifier()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"connection failure", &pgconn.PgError{Code: "08006"}, true},
		{"too many connections", &pgconn.PgError{Code: "53300"}, true},
		{"admin shutdown", &pgconn.PgError{Code: "57P01"}, true},
		{"serialization failure", &pgconn.PgError{Code: "40001"}, true},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, true},
		{"lock not available", &pgconn.PgError{Code: "55P03"}, true},
		{"syntax error", &pgconn.PgError{Code: "42601"}, false},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"wrapped pg error", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "08001"}), true},
		{"refused", &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}, true},
		{"dns timeout", &net.DNSError{Err: "timeout", IsTimeout: true}, true},
		{"dns not found", &net.DNSError{Err: "no such host", IsNotFound: true}, true},
		{"message pattern", errors.New("server closed the connection unexpectedly"), true},
		{"plain error", errors.New("invalid table name"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsTransient(tt.err))
		})
	}
}

func TestFilesystemErrorClassifier_IsTransient(t *testing.T) {
	c := NewFilesystemErrorClassifier()

	pathErr := func(errno syscall.Errno) error {
		return &fs.PathError{Op: "stat", Path: "/mnt/share", Err: errno}
	}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"busy", pathErr(syscall.EBUSY), true},
		{"stale handle", pathErr(syscall.ESTALE), true},
		{"timed out", pathErr(syscall.ETIMEDOUT), true},
		{"interrupted", pathErr(syscall.EINTR), true},
		{"try again", pathErr(syscall.EAGAIN), true},
		{"deadline", fmt.Errorf("read: %w", os.ErrDeadlineExceeded), true},
		{"not found", pathErr(syscall.ENOENT), false},
		{"permission", pathErr(syscall.EACCES), false},
		{"sentinel not exist", fs.ErrNotExist, false},
		{"plain error", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsTransient(tt.err))
		})
	}
}

package logging

import "github.com/vvka-141/fsproc/pkg/fsproc"

// prefixedLogger tags every message with a fixed prefix, e.g. an execution id.
type prefixedLogger struct {
	prefix string
	next   fsproc.Logger
}

// WithPrefix returns a logger that prepends "[prefix] " to every message
// before passing it to next.
func WithPrefix(next fsproc.Logger, prefix string) fsproc.Logger {
	if prefix == "" {
		return next
	}
	return &prefixedLogger{prefix: "[" + prefix + "] ", next: next}
}

func (l *prefixedLogger) Verbose(format string, args ...interface{}) {
	l.next.Verbose(l.prefix+format, args...)
}

func (l *prefixedLogger) Info(format string, args ...interface{}) {
	l.next.Info(l.prefix+format, args...)
}

func (l *prefixedLogger) Error(format string, args ...interface{}) {
	l.next.Error(l.prefix+format, args...)
}

// NullLogger discards everything. Components default to it when no logger
// is injected.
type NullLogger struct{}

func NewNullLogger() *NullLogger { return &NullLogger{} }

func (*NullLogger) Verbose(string, ...interface{}) {}
func (*NullLogger) Info(string, ...interface{})    {}
func (*NullLogger) Error(string, ...interface{})   {}

var (
	_ fsproc.Logger = (*prefixedLogger)(nil)
	_ fsproc.Logger = (*NullLogger)(nil)
)

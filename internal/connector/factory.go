package connector

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/vvka-141/fsproc/internal/lob"
	"github.com/vvka-141/fsproc/internal/logging"
	"github.com/vvka-141/fsproc/pkg/fsproc"
)

// ExecutionFactory creates file procedure executions and holds the
// connector-wide encoding setting. Safe for concurrent use.
type ExecutionFactory struct {
	mu       sync.RWMutex
	encoding string
	logger   fsproc.Logger
}

// NewExecutionFactory returns a factory using fsproc.DefaultEncoding.
// Panics if logger is nil.
func NewExecutionFactory(logger fsproc.Logger) *ExecutionFactory {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &ExecutionFactory{
		encoding: fsproc.DefaultEncoding,
		logger:   logger,
	}
}

// Encoding returns the character encoding applied to text rows.
func (f *ExecutionFactory) Encoding() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.encoding
}

// SetEncoding changes the encoding used by text rows. The change applies to
// every stream opened afterwards, including streams of rows already produced.
// An empty name restores the default.
func (f *ExecutionFactory) SetEncoding(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		name = fsproc.DefaultEncoding
	}
	if _, err := lob.LookupEncoding(name); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.encoding = name
	return nil
}

// CreateProcedureExecution builds an execution for call over conn. Nothing is
// resolved until Execute. The execution owns conn and closes it on Close.
func (f *ExecutionFactory) CreateProcedureExecution(call fsproc.Call, conn fsproc.Connection) (fsproc.ProcedureExecution, error) {
	if conn == nil {
		return nil, fmt.Errorf("%w: connection is required", fsproc.ErrInvalidArgument)
	}

	id := uuid.NewString()
	return &fileProcedureExecution{
		id:       id,
		call:     call,
		conn:     conn,
		logger:   logging.WithPrefix(f.logger, "exec "+id[:8]),
		encoding: f.Encoding,
	}, nil
}

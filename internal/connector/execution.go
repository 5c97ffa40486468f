package connector

import (
	"context"
	"errors"
	"fmt"

	"github.com/vvka-141/fsproc/internal/lob"
	"github.com/vvka-141/fsproc/pkg/fsproc"
)

var errAlreadyExecuted = errors.New("execution already started")

// fileProcedureExecution produces one row per resolved file.
// Not safe for concurrent use.
type fileProcedureExecution struct {
	id       string
	call     fsproc.Call
	conn     fsproc.Connection
	logger   fsproc.Logger
	encoding lob.EncodingSource

	mode     fsproc.Mode
	files    []fsproc.FileHandle
	cursor   int
	executed bool
	closed   bool
}

var _ fsproc.ProcedureExecution = (*fileProcedureExecution)(nil)

// Execute validates the call and resolves its path argument. On failure no
// rows are produced.
func (e *fileProcedureExecution) Execute(ctx context.Context) error {
	if e.closed {
		return fsproc.NewExecutionError("execute", fsproc.ErrConnectionClosed)
	}
	if e.executed {
		return fsproc.NewExecutionError("execute", errAlreadyExecuted)
	}
	e.executed = true

	path, err := e.call.PathArgument()
	if err != nil {
		return fsproc.NewExecutionError("execute", err)
	}
	mode, err := fsproc.ModeForProcedure(e.call.ProcedureName)
	if err != nil {
		return fsproc.NewExecutionError("execute", err)
	}

	files, err := e.conn.Resolve(ctx, path)
	if err != nil {
		e.logger.Error("failed to resolve %q: %v", path, err)
		return fsproc.NewExecutionError("resolve", fmt.Errorf("%w: %q: %w", fsproc.ErrResolutionFailed, path, err))
	}

	e.mode = mode
	e.files = files
	e.logger.Verbose("%s(%q) resolved %d file(s) in %s mode", e.call.ProcedureName, path, len(files), mode)
	return nil
}

// Next returns the row for the file at the cursor, or nil once every file
// has been produced. Before Execute, or after a failed Execute, it reports
// the end straight away.
func (e *fileProcedureExecution) Next() (*fsproc.Row, error) {
	if e.cursor >= len(e.files) {
		return nil, nil
	}

	handle := e.files[e.cursor]
	e.cursor++

	factory := lob.NewStreamFactory(handle)
	var content fsproc.LargeObject
	if e.mode == fsproc.ModeText {
		content = lob.NewClob(factory, e.encoding)
	} else {
		content = lob.NewBlob(factory)
	}

	return &fsproc.Row{Content: content, Name: handle.Name()}, nil
}

// OutputParameterValues is always empty; the file procedures have no out parameters.
func (e *fileProcedureExecution) OutputParameterValues() []any {
	return []any{}
}

// Cancel does nothing. Rows are produced synchronously on the caller's goroutine.
func (e *fileProcedureExecution) Cancel() error {
	return nil
}

// Close releases the connection once. A failing close is logged, not returned.
func (e *fileProcedureExecution) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true

	if err := e.conn.Close(); err != nil {
		e.logger.Error("failed to close connection: %v", err)
	}
	e.logger.Verbose("closed after %d of %d row(s)", e.cursor, len(e.files))
	return nil
}

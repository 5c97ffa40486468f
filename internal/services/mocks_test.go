package services

import (
	"context"

	"github.com/vvka-141/fsproc/pkg/fsproc"
)

type mockConnection struct {
	closeCalls int
	closeErr   error
}

func (m *mockConnection) Resolve(_ context.Context, _ string) ([]fsproc.FileHandle, error) {
	return nil, nil
}

func (m *mockConnection) Close() error {
	m.closeCalls++
	return m.closeErr
}

type mockConnectionFactory struct {
	conn *mockConnection
	err  error
}

func (m *mockConnectionFactory) GetConnection(_ context.Context) (fsproc.Connection, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.conn, nil
}

type mockExecution struct {
	rows       []*fsproc.Row
	executeErr error
	nextErr    error

	cursor     int
	closeCalls int
}

func (m *mockExecution) Execute(_ context.Context) error { return m.executeErr }

func (m *mockExecution) Next() (*fsproc.Row, error) {
	if m.nextErr != nil {
		return nil, m.nextErr
	}
	if m.cursor >= len(m.rows) {
		return nil, nil
	}
	row := m.rows[m.cursor]
	m.cursor++
	return row, nil
}

func (m *mockExecution) OutputParameterValues() []any { return []any{} }
func (m *mockExecution) Cancel() error                { return nil }

func (m *mockExecution) Close() error {
	m.closeCalls++
	return nil
}

type mockExecutionFactory struct {
	exec *mockExecution
	err  error
	call fsproc.Call
}

func (m *mockExecutionFactory) CreateProcedureExecution(call fsproc.Call, _ fsproc.Connection) (fsproc.ProcedureExecution, error) {
	m.call = call
	if m.err != nil {
		return nil, m.err
	}
	return m.exec, nil
}

func rows(names ...string) []*fsproc.Row {
	out := make([]*fsproc.Row, 0, len(names))
	for _, n := range names {
		out = append(out, &fsproc.Row{Name: n})
	}
	return out
}

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/vvka-141/fsproc/pkg/fsproc"
)

// ExecutionFactory creates an execution for one call over one connection.
type ExecutionFactory interface {
	CreateProcedureExecution(call fsproc.Call, conn fsproc.Connection) (fsproc.ProcedureExecution, error)
}

// RowVisitor receives each produced row. Returning an error stops the call.
type RowVisitor func(row *fsproc.Row) error

// Invoker runs calls against connections from a factory.
// Safe for concurrent use when its factories are.
type Invoker struct {
	connections fsproc.ConnectionFactory
	executions  ExecutionFactory
	logger      fsproc.Logger
}

// NewInvoker panics if any dependency is nil.
func NewInvoker(connections fsproc.ConnectionFactory, executions ExecutionFactory, logger fsproc.Logger) *Invoker {
	if connections == nil {
		panic("connections cannot be nil")
	}
	if executions == nil {
		panic("executions cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Invoker{
		connections: connections,
		executions:  executions,
		logger:      logger,
	}
}

// Call executes call and hands every row to visit in production order. It
// returns the number of rows visited. The connection is released before Call
// returns, whatever the outcome.
func (i *Invoker) Call(ctx context.Context, call fsproc.Call, visit RowVisitor) (int, error) {
	if visit == nil {
		return 0, fmt.Errorf("%w: row visitor is required", fsproc.ErrInvalidArgument)
	}
	start := time.Now()

	conn, err := i.connections.GetConnection(ctx)
	if err != nil {
		return 0, err
	}

	exec, err := i.executions.CreateProcedureExecution(call, conn)
	if err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			i.logger.Error("failed to close connection: %v", closeErr)
		}
		return 0, err
	}
	defer exec.Close()

	if err := exec.Execute(ctx); err != nil {
		return 0, err
	}

	visited := 0
	for {
		if err := ctx.Err(); err != nil {
			return visited, err
		}

		row, err := exec.Next()
		if err != nil {
			return visited, fsproc.NewExecutionError("next", err)
		}
		if row == nil {
			break
		}

		if err := visit(row); err != nil {
			return visited, fmt.Errorf("row %s: %w", row.Name, err)
		}
		visited++
	}

	i.logger.Verbose("%s produced %d row(s) in %v", call.ProcedureName, visited, time.Since(start).Round(time.Millisecond))
	return visited, nil
}

package fsproc

import "context"

// ProcedureExecution runs one procedure call and produces its rows on demand.
//
// Callers drive it as: Execute once, Next until it returns a nil row, then
// Close. Close must be called on every path, including after a failed
// Execute. Implementations are not safe for concurrent use.
type ProcedureExecution interface {
	// Execute resolves the call's arguments and prepares row production.
	Execute(ctx context.Context) error

	// Next returns the next row, or nil with a nil error once all rows
	// have been produced. Repeated calls after the end keep returning nil.
	Next() (*Row, error)

	// OutputParameterValues returns the values of out and in-out parameters.
	OutputParameterValues() []any

	// Cancel requests that a running execution stop.
	Cancel() error

	// Close releases the execution and its connection. It never fails.
	Close() error
}

// Direction is the direction of a procedure parameter.
type Direction string

const (
	DirectionIn          Direction = "IN"
	DirectionOut         Direction = "OUT"
	DirectionInOut       Direction = "INOUT"
	DirectionReturnValue Direction = "RETURN"
)

// Procedure is a procedure declared in a metadata catalog.
type Procedure struct {
	Name       string       `yaml:"name" json:"name"`
	Parameters []*Parameter `yaml:"parameters" json:"parameters"`
	Columns    []*Column    `yaml:"columns" json:"columns"`
}

// Parameter is one declared procedure parameter.
type Parameter struct {
	Name      string    `yaml:"name" json:"name"`
	Type      string    `yaml:"type" json:"type"`
	Direction Direction `yaml:"direction" json:"direction"`
	Position  int       `yaml:"position" json:"position"`
}

// Column is one declared result set column.
type Column struct {
	Name     string `yaml:"name" json:"name"`
	Type     string `yaml:"type" json:"type"`
	Position int    `yaml:"position" json:"position"`
}

// MetadataSink accepts procedure declarations from a connector.
type MetadataSink interface {
	DeclareProcedure(name string) (*Procedure, error)
	DeclareParameter(name, typeName string, direction Direction, procedure *Procedure) (*Parameter, error)
	DeclareResultColumn(name, typeName string, procedure *Procedure) (*Column, error)
}

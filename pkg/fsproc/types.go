package fsproc

import (
	"fmt"
	"io"
	"strings"
)

// Argument is one positional argument of a procedure call.
type Argument struct {
	Name  string
	Value any
}

// Call describes one procedure invocation: the procedure name plus its
// positional arguments. A Call is not modified during an execution.
type Call struct {
	ProcedureName string
	Arguments     []Argument
}

// NewCall builds a Call for one of the file procedures with its single path argument.
func NewCall(procedure, path string) Call {
	return Call{
		ProcedureName: procedure,
		Arguments:     []Argument{{Name: ParameterPath, Value: path}},
	}
}

// PathArgument returns the first positional argument as a string.
func (c Call) PathArgument() (string, error) {
	if len(c.Arguments) == 0 {
		return "", fmt.Errorf("procedure %s requires a %s argument: %w", c.ProcedureName, ParameterPath, ErrInvalidArgument)
	}
	path, ok := c.Arguments[0].Value.(string)
	if !ok {
		return "", fmt.Errorf("procedure %s: %s must be a string, got %T: %w",
			c.ProcedureName, ParameterPath, c.Arguments[0].Value, ErrInvalidArgument)
	}
	return path, nil
}

// Mode selects how file content is framed in produced rows.
type Mode int

const (
	ModeBinary Mode = iota // blob rows
	ModeText               // clob rows
)

// String returns a human-readable string representation of the Mode.
func (m Mode) String() string {
	switch m {
	case ModeBinary:
		return "binary"
	case ModeText:
		return "text"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// ModeForProcedure maps a procedure name to its dispatch mode.
// Names are matched case-insensitively; anything other than the two declared
// procedures yields ErrUnknownProcedure.
func ModeForProcedure(name string) (Mode, error) {
	switch {
	case strings.EqualFold(name, ProcedureFetchTextFiles):
		return ModeText, nil
	case strings.EqualFold(name, ProcedureFetchFiles):
		return ModeBinary, nil
	default:
		return ModeBinary, fmt.Errorf("%q: %w", name, ErrUnknownProcedure)
	}
}

// LobKind tags a large object as character or binary flavored.
type LobKind int

const (
	KindBlob LobKind = iota
	KindClob
)

// String returns the catalog type name of the kind.
func (k LobKind) String() string {
	switch k {
	case KindBlob:
		return TypeBlob
	case KindClob:
		return TypeClob
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// LargeObject is a possibly large value delivered through a stream that is
// opened on demand. Every Open call returns a fresh, independent stream which
// the caller must close.
type LargeObject interface {
	// Kind reports whether the value is character or binary flavored.
	Kind() LobKind

	// Length returns the value length in its own units, or -1 when unknown.
	// Blobs report bytes; clobs report characters.
	Length() int64

	// Open returns a new reader over the content.
	// Clob readers always yield UTF-8.
	Open() (io.ReadCloser, error)
}

// Row is one result row of a file procedure.
// Content always precedes Name.
type Row struct {
	Content LargeObject
	Name    string
}

// Values returns the row as positional column values in declaration order.
func (r *Row) Values() []any {
	return []any{r.Content, r.Name}
}

package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/vvka-141/fsproc/pkg/fsproc"
	"gopkg.in/yaml.v3"
)

// Registry is an in-memory fsproc.MetadataSink. Procedure names are unique
// ignoring case. Safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	procedures []*fsproc.Procedure
	byName     map[string]*fsproc.Procedure
}

var _ fsproc.MetadataSink = (*Registry)(nil)

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*fsproc.Procedure)}
}

func key(name string) string { return strings.ToLower(name) }

// DeclareProcedure registers an empty procedure named name.
func (r *Registry) DeclareProcedure(name string) (*fsproc.Procedure, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: procedure name is empty", fsproc.ErrInvalidArgument)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byName[key(name)]; ok {
		return nil, fmt.Errorf("%w: %s (already declared as %s)", fsproc.ErrDuplicateProcedure, name, existing.Name)
	}

	p := &fsproc.Procedure{Name: name}
	r.procedures = append(r.procedures, p)
	r.byName[key(name)] = p
	return p, nil
}

// DeclareParameter appends a parameter to procedure. Positions start at 1.
func (r *Registry) DeclareParameter(name, typeName string, direction fsproc.Direction, procedure *fsproc.Procedure) (*fsproc.Parameter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkMember(name, typeName, procedure); err != nil {
		return nil, err
	}
	if !validDirection(direction) {
		return nil, fmt.Errorf("%w: unknown parameter direction %q", fsproc.ErrInvalidArgument, direction)
	}
	for _, existing := range procedure.Parameters {
		if strings.EqualFold(existing.Name, name) {
			return nil, fmt.Errorf("%w: parameter %s already declared on %s", fsproc.ErrInvalidArgument, name, procedure.Name)
		}
	}

	param := &fsproc.Parameter{
		Name:      name,
		Type:      typeName,
		Direction: direction,
		Position:  len(procedure.Parameters) + 1,
	}
	procedure.Parameters = append(procedure.Parameters, param)
	return param, nil
}

// DeclareResultColumn appends a result column to procedure. Positions start at 1.
func (r *Registry) DeclareResultColumn(name, typeName string, procedure *fsproc.Procedure) (*fsproc.Column, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkMember(name, typeName, procedure); err != nil {
		return nil, err
	}
	for _, existing := range procedure.Columns {
		if strings.EqualFold(existing.Name, name) {
			return nil, fmt.Errorf("%w: column %s already declared on %s", fsproc.ErrInvalidArgument, name, procedure.Name)
		}
	}

	col := &fsproc.Column{
		Name:     name,
		Type:     typeName,
		Position: len(procedure.Columns) + 1,
	}
	procedure.Columns = append(procedure.Columns, col)
	return col, nil
}

// checkMember validates a parameter or column declaration. Caller holds the lock.
func (r *Registry) checkMember(name, typeName string, procedure *fsproc.Procedure) error {
	if procedure == nil {
		return fmt.Errorf("%w: procedure is nil", fsproc.ErrInvalidArgument)
	}
	if r.byName[key(procedure.Name)] != procedure {
		return fmt.Errorf("%w: procedure %s is not declared in this registry", fsproc.ErrInvalidArgument, procedure.Name)
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is empty", fsproc.ErrInvalidArgument)
	}
	if strings.TrimSpace(typeName) == "" {
		return fmt.Errorf("%w: type of %s is empty", fsproc.ErrInvalidArgument, name)
	}
	return nil
}

func validDirection(d fsproc.Direction) bool {
	switch d {
	case fsproc.DirectionIn, fsproc.DirectionOut, fsproc.DirectionInOut, fsproc.DirectionReturnValue:
		return true
	}
	return false
}

// Lookup finds a procedure by name, ignoring case.
func (r *Registry) Lookup(name string) (*fsproc.Procedure, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byName[key(name)]
	return p, ok
}

// Procedures returns the declared procedures in declaration order.
func (r *Registry) Procedures() []*fsproc.Procedure {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*fsproc.Procedure, len(r.procedures))
	copy(out, r.procedures)
	return out
}

// Len returns the number of declared procedures.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.procedures)
}

type document struct {
	Procedures []*fsproc.Procedure `yaml:"procedures" json:"procedures"`
}

// WriteYAML renders the catalog as YAML.
func (r *Registry) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(document{Procedures: r.Procedures()}); err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	return enc.Close()
}

// WriteJSON renders the catalog as indented JSON.
func (r *Registry) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(document{Procedures: r.Procedures()}); err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	return nil
}

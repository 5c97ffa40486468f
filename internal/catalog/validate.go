package catalog

import (
	"fmt"
	"strings"

	"github.com/vvka-141/fsproc/pkg/fsproc"
)

// ValidationResult collects problems found by Validate.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

func (v *ValidationResult) AddError(format string, args ...interface{}) {
	v.Valid = false
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}

// ErrorString joins all errors with semicolons.
func (v *ValidationResult) ErrorString() string {
	return strings.Join(v.Errors, "; ")
}

var knownTypes = map[string]bool{
	fsproc.TypeString: true,
	fsproc.TypeClob:   true,
	fsproc.TypeBlob:   true,
}

// Validate checks that every procedure produces at least one column and that
// all declared types are runtime types the connector can produce.
func (r *Registry) Validate() ValidationResult {
	result := ValidationResult{Valid: true, Errors: []string{}}

	for _, p := range r.Procedures() {
		if len(p.Columns) == 0 {
			result.AddError("procedure %s declares no result columns", p.Name)
		}
		for _, param := range p.Parameters {
			if !knownTypes[param.Type] {
				result.AddError("procedure %s parameter %s has unknown type %q", p.Name, param.Name, param.Type)
			}
		}
		for _, col := range p.Columns {
			if !knownTypes[col.Type] {
				result.AddError("procedure %s column %s has unknown type %q", p.Name, col.Name, col.Type)
			}
		}
	}
	return result
}

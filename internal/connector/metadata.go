package connector

import (
	"fmt"

	"github.com/vvka-141/fsproc/pkg/fsproc"
)

// fileProcedures lists the declared procedures with their content column type.
var fileProcedures = []struct {
	name        string
	contentType string
}{
	{fsproc.ProcedureFetchTextFiles, fsproc.TypeClob},
	{fsproc.ProcedureFetchFiles, fsproc.TypeBlob},
}

// GetConnectorMetadata declares fetchTextFiles and fetchFiles on sink. Each
// takes a string path and returns the content column followed by the name
// column. Call it once per sink; sinks that reject duplicates fail a second
// call.
func (f *ExecutionFactory) GetConnectorMetadata(sink fsproc.MetadataSink) error {
	if sink == nil {
		return fmt.Errorf("%w: metadata sink is required", fsproc.ErrInvalidArgument)
	}

	for _, fp := range fileProcedures {
		proc, err := sink.DeclareProcedure(fp.name)
		if err != nil {
			return fmt.Errorf("failed to declare %s: %w", fp.name, err)
		}
		if _, err := sink.DeclareParameter(fsproc.ParameterPath, fsproc.TypeString, fsproc.DirectionIn, proc); err != nil {
			return fmt.Errorf("failed to declare %s.%s: %w", fp.name, fsproc.ParameterPath, err)
		}
		if _, err := sink.DeclareResultColumn(fsproc.ColumnFile, fp.contentType, proc); err != nil {
			return fmt.Errorf("failed to declare %s.%s: %w", fp.name, fsproc.ColumnFile, err)
		}
		if _, err := sink.DeclareResultColumn(fsproc.ColumnName, fsproc.TypeString, proc); err != nil {
			return fmt.Errorf("failed to declare %s.%s: %w", fp.name, fsproc.ColumnName, err)
		}
	}

	f.logger.Verbose("declared %d file procedures", len(fileProcedures))
	return nil
}

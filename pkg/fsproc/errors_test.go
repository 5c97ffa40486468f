package fsproc_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vvka-141/fsproc/pkg/fsproc"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, fsproc.ExitSuccess},
		{"unknown flag", errors.New("unknown flag --foo"), fsproc.ExitUsageError},
		{"accepts args", errors.New("accepts 2 arg(s), received 0"), fsproc.ExitUsageError},
		{"invalid argument sentinel", fmt.Errorf("call: %w", fsproc.ErrInvalidArgument), fsproc.ExitUsageError},
		{"general error", errors.New("something went wrong"), fsproc.ExitGeneralError},
		{"invalid config", fmt.Errorf("load: %w", fsproc.ErrInvalidConfig), fsproc.ExitConfigError},
		{"unknown procedure", fmt.Errorf("%q: %w", "dropFiles", fsproc.ErrUnknownProcedure), fsproc.ExitConfigError},
		{"unsupported encoding", fsproc.ErrUnsupportedEncoding, fsproc.ExitConfigError},
		{"connection failed", fsproc.ErrConnectionFailed, fsproc.ExitConnectionError},
		{"resolution failed", fsproc.NewExecutionError("resolve", fsproc.ErrResolutionFailed), fsproc.ExitExecutionFailed},
		{"content unavailable", fsproc.ErrContentUnavailable, fsproc.ExitExecutionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fsproc.ExitCodeForError(tt.err))
		})
	}
}

func TestExecutionError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("bad pattern: %w", fsproc.ErrInvalidPattern)
	err := fsproc.NewExecutionError("resolve", cause)

	var execErr *fsproc.ExecutionError
	assert.True(t, errors.As(err, &execErr))
	assert.Equal(t, "resolve", execErr.Operation)
	assert.ErrorIs(t, err, fsproc.ErrInvalidPattern)
	assert.Equal(t, "resolve: bad pattern: invalid pattern", err.Error())
}

func TestNewExecutionError_Nil(t *testing.T) {
	assert.NoError(t, fsproc.NewExecutionError("resolve", nil))
}

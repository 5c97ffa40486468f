package fsproc

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Call completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration or unknown procedure
	ExitConnectionError = 11 // Connection could not be acquired
	ExitExecutionFailed = 13 // Resolution or content streaming failed
)

// Procedure names declared by the file connector.
// Matching against incoming calls is case-insensitive.
const (
	ProcedureFetchTextFiles = "fetchTextFiles"
	ProcedureFetchFiles     = "fetchFiles"
)

// Parameter and result column names shared by both procedures.
const (
	ParameterPath = "path"
	ColumnFile    = "file"
	ColumnName    = "name"
)

// Runtime type names used in catalog declarations.
const (
	TypeString = "string"
	TypeClob   = "clob"
	TypeBlob   = "blob"
)

const (
	// DefaultEncoding is the character encoding used for text-mode large
	// objects when none is configured. Go strings are UTF-8, so that is the
	// platform default.
	DefaultEncoding = "UTF-8"

	// DefaultRetryInitialDelay is the default initial delay before the first retry attempt.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between retry attempts.
	DefaultRetryMaxDelay = 5 * time.Second

	// DefaultRetryMaxAttempts is the default maximum number of retry attempts.
	DefaultRetryMaxAttempts = 3

	// DefaultLoadTable is the table the Postgres loader writes rows into.
	DefaultLoadTable = "fsproc_file"

	// DefaultCallTimeout bounds a whole CLI call, including consumption of rows.
	DefaultCallTimeout = 5 * time.Minute
)

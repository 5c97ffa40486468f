package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fsproc",
	Short: "Expose files as procedure result rows",
	Long: `fsproc resolves a path or wildcard pattern against a root directory (or a
.zip archive) and streams every matching file as one row of a procedure result.

Procedures:
  fetchTextFiles(path)  rows of (file clob, name string), decoded with --encoding
  fetchFiles(path)      rows of (file blob, name string), raw bytes

Procedure names are matched case-insensitively. File content is only read
when a row is consumed.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or unknown procedure
  11 - File root could not be opened
  13 - Resolution or content streaming failed`,
	SilenceUsage: true,
}

type globalFlagValues struct {
	verbose    bool
	configPath string
	timeout    time.Duration
}

var globalFlags globalFlagValues

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.verbose, "verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().StringVar(&globalFlags.configPath, "config", "",
		"Project configuration file (default: ./fsproc.yaml when present)")
	rootCmd.PersistentFlags().DurationVar(&globalFlags.timeout, "timeout", 0,
		"Upper bound for the whole command, including row consumption\n"+
			"Precedence: --timeout > timeout in fsproc.yaml > 5m")
}

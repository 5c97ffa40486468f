package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vvka-141/fsproc/internal/catalog"
	"github.com/vvka-141/fsproc/internal/connector"
	"github.com/vvka-141/fsproc/internal/logging"
	"github.com/vvka-141/fsproc/pkg/fsproc"
)

var metadataCmd = &cobra.Command{
	Use:   "metadata",
	Short: "Print the procedures the connector declares",
	Long: `Metadata registers the connector's procedures in a fresh catalog and prints
their parameters and result columns as YAML (or JSON with --json).`,
	Args: cobra.NoArgs,
	RunE: runMetadata,
}

var metadataJSON bool

func init() {
	rootCmd.AddCommand(metadataCmd)
	metadataCmd.Flags().BoolVar(&metadataJSON, "json", false, "Print JSON instead of YAML")
}

func runMetadata(cmd *cobra.Command, args []string) error {
	logger := logging.NewConsoleLoggerWithWriter(globalFlags.verbose, cmd.ErrOrStderr())

	registry := catalog.NewRegistry()
	if err := connector.NewExecutionFactory(logger).GetConnectorMetadata(registry); err != nil {
		return err
	}
	if result := registry.Validate(); !result.Valid {
		return fmt.Errorf("%w: connector metadata is inconsistent:\n%s", fsproc.ErrInvalidConfig, result.ErrorString())
	}

	if metadataJSON {
		return registry.WriteJSON(cmd.OutOrStdout())
	}
	return registry.WriteYAML(cmd.OutOrStdout())
}

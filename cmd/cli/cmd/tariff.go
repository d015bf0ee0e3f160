package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"tariff-engine/core/tariff"
	"tariff-engine/internal/config"
)

// tariffCmd groups tariff document operations.
var tariffCmd = &cobra.Command{
	Use:   "tariff",
	Short: "Tariff document operations",
}

func init() {
	tariffCmd.AddCommand(tariffValidateCmd)
}

// tariffValidateCmd loads the tariff document and reports its identity.
// Only version and content hash are printed; coefficients stay inside.
var tariffValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the tariff document",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.Get().Tariff.Path
		t, err := tariff.Load(path)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "tariff document OK\n")
		fmt.Fprintf(cmd.OutOrStdout(), "  path:         %s\n", path)
		fmt.Fprintf(cmd.OutOrStdout(), "  version:      %s\n", t.Version())
		fmt.Fprintf(cmd.OutOrStdout(), "  currency:     %s\n", t.Currency())
		fmt.Fprintf(cmd.OutOrStdout(), "  content hash: %s\n", t.ContentHash())
		return nil
	},
}

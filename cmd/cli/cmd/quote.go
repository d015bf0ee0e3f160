package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"tariff-engine/core/output"
	"tariff-engine/core/quote"
	"tariff-engine/core/tariff"
	"tariff-engine/core/validate"
	"tariff-engine/internal/config"
)

var (
	quoteInput  string
	quoteOutput string
)

func init() {
	quoteCmd.Flags().StringVar(&quoteInput, "input", "", "quote request JSON file (- for stdin)")
	quoteCmd.Flags().StringVar(&quoteOutput, "output", "json", "output format: json or text")
	_ = quoteCmd.MarkFlagRequired("input")
}

// quoteCmd evaluates a single quote request against the tariff and prints
// the decision.
var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Quote a single shipment",
	RunE: func(cmd *cobra.Command, args []string) error {
		var data []byte
		var err error
		if quoteInput == "-" {
			data, err = os.ReadFile("/dev/stdin")
		} else {
			data, err = os.ReadFile(quoteInput)
		}
		if err != nil {
			return fmt.Errorf("reading request: %w", err)
		}

		var req struct {
			CargoClassID string          `json:"cargo_class_id"`
			SumInsured   decimal.Decimal `json:"sum_insured"`
			Condition    string          `json:"condition"`
			Franchise    decimal.Decimal `json:"franchise"`
			IsReefer     bool            `json:"is_reefer"`
			RouteZone    string          `json:"route_zone"`
		}
		if err := json.Unmarshal(data, &req); err != nil {
			return fmt.Errorf("parsing request: %w", err)
		}

		formatter, err := output.New(output.Format(quoteOutput))
		if err != nil {
			return err
		}

		store, err := tariff.NewStore(config.Get().Tariff.Path)
		if err != nil {
			return err
		}

		decision, err := quote.New(store).Quote(validate.Raw{
			CargoClassID: req.CargoClassID,
			SumInsured:   req.SumInsured,
			Condition:    req.Condition,
			Franchise:    req.Franchise,
			IsReefer:     req.IsReefer,
			RouteZone:    req.RouteZone,
		})
		if err != nil {
			return err
		}

		return formatter.Render(cmd.OutOrStdout(), decision)
	},
}

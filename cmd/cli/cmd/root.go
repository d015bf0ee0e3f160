// Package cmd provides the CLI commands for tariff-engine.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tariff-engine/internal/config"
	"tariff-engine/internal/logging"
)

var (
	cfgFile    string
	tariffPath string
	verbose    bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tariff-engine",
	Short: "Deterministic cargo insurance quoting and underwriting engine",
	Long: `tariff-engine quotes cargo insurance shipments against a confidential
tariff configuration and returns an underwriting verdict
(AUTO_OK, REFER or DECLINE) with a premium for auto-approved risks.

Examples:
  tariff-engine quote --input request.json
  tariff-engine tariff validate
  tariff-engine serve`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "application config file")
	rootCmd.PersistentFlags().StringVar(&tariffPath, "tariff", "", "tariff document path (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(tariffCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if tariffPath != "" {
		cfg.Tariff.Path = tariffPath
	}
	config.Set(cfg)

	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("tariff-engine version 1.0.0")
	},
}

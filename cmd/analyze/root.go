// Root command for the analyze CLI.
package main

import (
	"github.com/spf13/cobra"
)

// Global flag values.
var (
	flagConfigFile string
	flagInputDir   string
	flagOutputDir  string
	flagVerbose    bool
)

// cfg holds the effective configuration, resolved by PersistentPreRunE
// with precedence flag > config file > environment > default.
var cfg = defaultLoadedConfig()

var rootCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Batch analysis pipeline for the perception experiment",
	Long: `Analyze assembles per-participant survey exports and written-answer
logs into a tidy table, anonymizes it, and runs the manipulation
validity, strength, regression, and lexical frequency analyses.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig(flagConfigFile, flagInputDir, flagOutputDir)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "", "config file (default: ./analyze.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&flagInputDir, "input-dir", "", "input directory holding quant_data/ and qual_data/")
	rootCmd.PersistentFlags().StringVar(&flagOutputDir, "output-dir", "", "output directory for tables, reports, and figures")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

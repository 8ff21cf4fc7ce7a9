// Run command: executes the full analysis pipeline.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Suzuka-Y/B4-2-analysis/internal/pipeline"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full analysis pipeline",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger(flagVerbose)
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		defer log.Sync()

		return pipeline.New(cfg, log.Sugar()).Run()
	},
}

// newLogger builds the process logger. Verbose mode switches to the
// human-oriented development encoder with debug level.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	zc := zap.NewProductionConfig()
	zc.Encoding = "console"
	zc.DisableStacktrace = true
	return zc.Build()
}

package main

import (
	"github.com/spf13/cobra"

	"resumegenius-backend/internal/shared/config"
	"resumegenius-backend/internal/shared/telemetry"
)

type rootOptions struct {
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "resumectl",
		Short: "Drive the resume pipeline from the command line",
		Long: `resumectl runs individual stages of the resume pipeline locally:
summarize a GitHub profile, synthesize a resume document, render it to PDF
and inspect the resulting file.

Configuration is read from the same environment variables as the API server.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			telemetry.SetDebug(opts.verbose)
		},
	}
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose (debug) logging")

	cmd.AddCommand(
		newSummarizeCmd(config.Load),
		newGenerateCmd(config.Load),
		newRenderCmd(config.Load),
		newInspectCmd(),
	)
	return cmd
}

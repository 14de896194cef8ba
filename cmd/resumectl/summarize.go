package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"resumegenius-backend/internal/bootstrap"
	"resumegenius-backend/internal/shared/config"
)

func newSummarizeCmd(loadConfig func() config.Config) *cobra.Command {
	var sample bool
	cmd := &cobra.Command{
		Use:   "summarize <github-profile-url>",
		Short: "Print the repository summary fed to the model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if sample {
				cfg.UseRealGitHub = false
			}
			summary := bootstrap.NewSource(cfg).Summarize(cmd.Context(), args[0])
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), summary.Text); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.ErrOrStderr(), "outcome=%s repos=%d\n", summary.Outcome, summary.RepoCount)
			return err
		},
	}
	cmd.Flags().BoolVar(&sample, "sample", false, "Use the built-in sample profile instead of the GitHub API")
	return cmd
}

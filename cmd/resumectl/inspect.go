package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"resumegenius-backend/internal/extract"
)

func newInspectCmd() *cobra.Command {
	var showText bool
	cmd := &cobra.Command{
		Use:   "inspect <file.pdf>",
		Short: "Report page count and extracted text of a PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrap(err, "read pdf")
			}
			report, err := extract.Inspect(cmd.Context(), data)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "pages: %d\n", report.Pages); err != nil {
				return err
			}
			if showText {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), report.Text)
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&showText, "text", false, "Print the extracted text")
	return cmd
}

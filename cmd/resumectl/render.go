package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"resumegenius-backend/internal/bootstrap"
	"resumegenius-backend/internal/shared/config"
	"resumegenius-backend/resume/model"
	"resumegenius-backend/resume/render"
)

func newRenderCmd(loadConfig func() config.Config) *cobra.Command {
	var (
		out       string
		htmlOnly  bool
		themeFile string
	)
	cmd := &cobra.Command{
		Use:   "render <resume.json>",
		Short: "Render a resume document to PDF",
		Long: `Render a resume document (the JSON returned by generate or POST /analyze)
to a single-page PDF using headless Chrome. --html writes the intermediate
HTML instead and needs no browser.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrap(err, "read document")
			}
			var doc model.ResumeDocument
			if err := json.Unmarshal(raw, &doc); err != nil {
				return errors.Wrap(err, "decode document")
			}
			if err := doc.Validate(); err != nil {
				return err
			}

			cfg := loadConfig()
			if themeFile != "" {
				cfg.ThemeFile = themeFile
			}
			theme, err := bootstrap.LoadTheme(cfg.ThemeFile)
			if err != nil {
				return err
			}

			if htmlOnly {
				page, err := render.RenderHTMLWithTheme(doc, theme)
				if err != nil {
					return err
				}
				return writeOutput(cmd.OutOrStdout(), out, page)
			}

			renderer := render.NewPDFRenderer(cfg.ChromeBin, cfg.RenderTimeout).WithTheme(theme)
			defer func() { _ = renderer.Close() }()

			data, err := renderer.Render(cmd.Context(), doc)
			if err != nil {
				return err
			}
			if out == "" {
				out = "resume.pdf"
			}
			return writeOutput(cmd.OutOrStdout(), out, data)
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Output path (PDF defaults to resume.pdf, HTML to stdout)")
	cmd.Flags().BoolVar(&htmlOnly, "html", false, "Write HTML instead of PDF")
	cmd.Flags().StringVar(&themeFile, "theme", "", "YAML theme file (overrides RENDER_THEME_FILE)")
	return cmd
}

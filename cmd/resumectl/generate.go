package main

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"resumegenius-backend/internal/bootstrap"
	"resumegenius-backend/internal/resumes"
	"resumegenius-backend/internal/shared/config"
	"resumegenius-backend/resume/service"
)

type generateOptions struct {
	input     string
	githubURL string
	student   bool
	sample    bool
	out       string
}

func newGenerateCmd(loadConfig func() config.Config) *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Synthesize a resume document as JSON",
		Long: `Synthesize a resume document from a GitHub profile and/or manual input.

The --input file uses the same JSON shape as POST /api/v1/analyze. Use "-" to
read it from stdin. --github-url and --student override the file.

Example:
  resumectl generate --github-url https://github.com/octocat
  resumectl generate --input request.json --out resume.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, loadConfig(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.input, "input", "", "Path to an analyze request JSON file")
	cmd.Flags().StringVar(&opts.githubURL, "github-url", "", "GitHub profile URL")
	cmd.Flags().BoolVar(&opts.student, "student", false, "Generate in student mode")
	cmd.Flags().BoolVar(&opts.sample, "sample", false, "Use the built-in sample profile instead of the GitHub API")
	cmd.Flags().StringVar(&opts.out, "out", "", "Write the document here instead of stdout")
	return cmd
}

func runGenerate(cmd *cobra.Command, cfg config.Config, opts *generateOptions) error {
	in, err := readAnalyzeInput(cmd.InOrStdin(), opts.input)
	if err != nil {
		return err
	}
	if strings.TrimSpace(opts.githubURL) != "" {
		in.GitHubURL = strings.TrimSpace(opts.githubURL)
	}
	if opts.student {
		in.Synthesis.IsStudent = true
	}
	if opts.sample {
		cfg.UseRealGitHub = false
	}

	gen, _, err := bootstrap.NewGenerator(cmd.Context(), cfg)
	if err != nil {
		return errors.Wrap(err, "build generator")
	}
	synth := service.NewSynthesizer(gen)
	synth.MaxAttempts = cfg.LLMMaxAttempts
	synth.Temperature = cfg.LLMTemperature
	synth.TopK = cfg.LLMTopK

	svc := &resumes.Service{Source: bootstrap.NewSource(cfg), Synthesizer: synth}
	result, err := svc.Analyze(cmd.Context(), in)
	if err != nil {
		return errors.Wrap(err, "generate resume")
	}

	pretty, err := json.MarshalIndent(result.Document, "", "  ")
	if err != nil {
		return errors.Wrap(err, "format json")
	}
	pretty = append(pretty, '\n')
	return writeOutput(cmd.OutOrStdout(), opts.out, pretty)
}

func readAnalyzeInput(stdin io.Reader, path string) (resumes.AnalyzeInput, error) {
	switch strings.TrimSpace(path) {
	case "":
		return resumes.AnalyzeInput{}, nil
	case "-":
		return resumes.DecodeAnalyzeRequest(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return resumes.AnalyzeInput{}, errors.Wrap(err, "open input")
	}
	defer f.Close()
	return resumes.DecodeAnalyzeRequest(f)
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "write output")
	}
	return nil
}

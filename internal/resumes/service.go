package resumes

import (
	"context"
	"fmt"

	"resumegenius-backend/internal/github"
	"resumegenius-backend/internal/shared/telemetry"
	"resumegenius-backend/resume/model"
)

// Source produces the repository summary for a GitHub profile URL. It never
// fails; problems are reported through the returned Summary.
type Source interface {
	Summarize(ctx context.Context, profileURL string) github.Summary
}

// Synthesizer builds a resume from a summary and manual inputs.
type Synthesizer interface {
	Synthesize(ctx context.Context, in model.SynthesisInput) (model.ResumeDocument, error)
}

// Renderer prints a resume to PDF.
type Renderer interface {
	Render(ctx context.Context, doc model.ResumeDocument) ([]byte, error)
}

// AnalyzeInput is one validated generation request.
type AnalyzeInput struct {
	GitHubURL string
	Synthesis model.SynthesisInput
}

// AnalyzeResult carries the document plus how the GitHub lookup went.
type AnalyzeResult struct {
	Document      model.ResumeDocument
	GitHubOutcome github.Outcome
}

// Service runs the summarize then synthesize pipeline for one request.
type Service struct {
	Source      Source
	Synthesizer Synthesizer
	Renderer    Renderer
}

// Analyze validates the input, summarizes the GitHub profile when one is
// given and synthesizes the resume.
func (s *Service) Analyze(ctx context.Context, in AnalyzeInput) (AnalyzeResult, error) {
	hasManualExperience := len(in.Synthesis.ManualExperience) > 0
	if in.GitHubURL == "" && !hasManualExperience {
		if in.Synthesis.HasManualData() {
			return AnalyzeResult{}, fmt.Errorf("%w: manual education and highlights alone are not enough", ErrNoDataSource)
		}
		return AnalyzeResult{}, ErrNoDataSource
	}

	var result AnalyzeResult
	if in.GitHubURL != "" {
		summary := s.Source.Summarize(ctx, in.GitHubURL)
		result.GitHubOutcome = summary.Outcome
		if !summary.HasData && !hasManualExperience {
			telemetry.Warn("resumes.no_usable_source", map[string]any{
				"github_outcome": string(summary.Outcome),
				"username":       summary.Username,
			})
			return result, fmt.Errorf("%w (github: %s)", ErrNoUsableSource, summary.Outcome)
		}
		in.Synthesis.RepoSummary = summary.Text
	}

	doc, err := s.Synthesizer.Synthesize(ctx, in.Synthesis)
	if err != nil {
		return result, err
	}
	if doc.PersonalInfo.GitHub == "" && in.GitHubURL != "" {
		doc.PersonalInfo.GitHub = in.GitHubURL
	}
	result.Document = doc
	return result, nil
}

// Render validates a caller-supplied document and prints it.
func (s *Service) Render(ctx context.Context, doc model.ResumeDocument) ([]byte, error) {
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.Renderer.Render(ctx, doc)
}

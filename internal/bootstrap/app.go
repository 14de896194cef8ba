package bootstrap

import (
	"context"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"resumegenius-backend/internal/github"
	"resumegenius-backend/internal/llm"
	"resumegenius-backend/internal/llm/gemini"
	"resumegenius-backend/internal/resumes"
	"resumegenius-backend/internal/services/health"
	"resumegenius-backend/internal/shared/config"
	"resumegenius-backend/internal/shared/server"
	"resumegenius-backend/internal/shared/server/middleware"
	"resumegenius-backend/internal/shared/telemetry"
	"resumegenius-backend/resume/render"
	"resumegenius-backend/resume/service"
)

// App holds shared dependencies.
type App struct {
	Config        config.Config
	Router        *gin.Engine
	Generator     llm.Generator
	Source        resumes.Source
	Synthesizer   *service.Synthesizer
	Renderer      *render.PDFRenderer
	ResumeService *resumes.Service
	ResumeHandler *resumes.Handler
}

// Build prepares shared dependencies and wires routes.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	telemetry.SetDebug(cfg.Debug)

	gen, configured, err := NewGenerator(ctx, cfg)
	if err != nil {
		return nil, err
	}

	synth := service.NewSynthesizer(gen)
	synth.MaxAttempts = cfg.LLMMaxAttempts
	synth.Temperature = cfg.LLMTemperature
	synth.TopK = cfg.LLMTopK

	theme, err := LoadTheme(cfg.ThemeFile)
	if err != nil {
		return nil, err
	}
	renderer := render.NewPDFRenderer(cfg.ChromeBin, cfg.RenderTimeout).WithTheme(theme)
	source := NewSource(cfg)

	svc := &resumes.Service{Source: source, Synthesizer: synth, Renderer: renderer}
	handler := resumes.NewHandler(svc)

	app := &App{
		Config:        cfg,
		Generator:     gen,
		Source:        source,
		Synthesizer:   synth,
		Renderer:      renderer,
		ResumeService: svc,
		ResumeHandler: handler,
	}
	app.Router = server.NewRouter(server.RouterDeps{
		Config:        cfg,
		ResumeHandler: handler,
		Health:        health.NewService(configured),
		Limiter:       middleware.NewRateLimiter(nil),
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":             cfg.Env,
		"llm_configured":  configured,
		"model":           cfg.GeminiModel,
		"use_real_github": cfg.UseRealGitHub,
	})
	return app, nil
}

// Close releases the headless browser, if one was started.
func (a *App) Close() error {
	if a == nil || a.Renderer == nil {
		return nil
	}
	return a.Renderer.Close()
}

// NewGenerator returns the Gemini client, or a placeholder that always fails
// when no API key is configured. The bool reports which one was chosen.
func NewGenerator(ctx context.Context, cfg config.Config) (llm.Generator, bool, error) {
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		telemetry.Warn("bootstrap.llm_unconfigured", map[string]any{"reason": "GEMINI_API_KEY empty"})
		return llm.PlaceholderGenerator{}, false, nil
	}
	client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, false, err
	}
	return client, true, nil
}

// NewSource picks the live GitHub summarizer or the canned sample.
func NewSource(cfg config.Config) resumes.Source {
	if !cfg.UseRealGitHub {
		return github.SampleSource{}
	}
	return github.NewSummarizer(github.NewClient(cfg.GitHubAPIURL, cfg.GitHubToken, cfg.GitHubTimeout))
}

// LoadTheme reads the render theme at path, or returns DefaultTheme when
// path is empty.
func LoadTheme(path string) (render.Theme, error) {
	if strings.TrimSpace(path) == "" {
		return render.DefaultTheme, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return render.Theme{}, errors.Wrap(err, "open theme")
	}
	defer f.Close()
	return render.LoadTheme(f)
}

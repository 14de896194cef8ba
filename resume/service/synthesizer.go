package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ecodeclub/ekit/retry"

	"resumegenius-backend/internal/llm"
	"resumegenius-backend/internal/shared/metrics"
	"resumegenius-backend/internal/shared/telemetry"
	"resumegenius-backend/resume/contract"
	"resumegenius-backend/resume/model"
)

const (
	DefaultMaxAttempts     = 3
	DefaultTemperature     = float32(0.1)
	DefaultTopK            = float32(40)
	defaultInitialInterval = 500 * time.Millisecond
	defaultMaxInterval     = 4 * time.Second
)

// Synthesizer turns a repository summary plus manual inputs into a
// ResumeDocument using a schema-constrained generator.
type Synthesizer struct {
	Generator   llm.Generator
	Prompts     llm.PromptSet
	MaxAttempts int
	Temperature float32
	TopK        float32
	BackoffBase time.Duration
	BackoffMax  time.Duration
}

// NewSynthesizer returns a Synthesizer with default sampling and retry settings.
func NewSynthesizer(gen llm.Generator) *Synthesizer {
	prompts, _ := llm.PromptTemplate(llm.DefaultPromptVersion)
	return &Synthesizer{
		Generator:   gen,
		Prompts:     prompts,
		MaxAttempts: DefaultMaxAttempts,
		Temperature: DefaultTemperature,
		TopK:        DefaultTopK,
		BackoffBase: defaultInitialInterval,
		BackoffMax:  defaultMaxInterval,
	}
}

type attemptError struct {
	kind FailureKind
	err  error
}

// Synthesize generates, validates and post-processes one resume.
func (s *Synthesizer) Synthesize(ctx context.Context, in model.SynthesisInput) (model.ResumeDocument, error) {
	if s.Generator == nil {
		return model.ResumeDocument{}, &GenerationError{Kind: FailureGeneration, Err: llm.ErrNotConfigured}
	}
	attempts := s.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}
	schema := ResumeSchema()
	req := llm.GenerateRequest{
		SystemInstruction: s.Prompts.System,
		Prompt:            BuildPrompt(s.Prompts, in),
		Schema:            schema,
		Temperature:       s.Temperature,
		TopK:              s.TopK,
	}

	start := time.Now()
	defer func() { metrics.ObserveSynthesisDuration(time.Since(start)) }()

	backoff := s.newBackoff(attempts)
	var last attemptError
	for attempt := 1; attempt <= attempts; attempt++ {
		doc, failure := s.attempt(ctx, req, schema)
		if failure == nil {
			metrics.IncSynthesisAttempt("ok")
			contract.Apply(&doc, in)
			telemetry.Info("synthesis.completed", map[string]any{
				"attempt":    attempt,
				"is_student": in.IsStudent,
				"experience": len(doc.Experience),
				"projects":   len(doc.Projects),
				"education":  len(doc.Education),
			})
			return doc, nil
		}

		last = *failure
		metrics.IncSynthesisAttempt(string(failure.kind))
		telemetry.Warn("synthesis.attempt_failed", map[string]any{
			"attempt":      attempt,
			"max_attempts": attempts,
			"kind":         string(failure.kind),
			"error":        failure.err,
		})
		if attempt == attempts {
			break
		}
		if err := wait(ctx, backoff); err != nil {
			return model.ResumeDocument{}, &GenerationError{Kind: FailureGeneration, Attempts: attempt, Err: err}
		}
	}

	return model.ResumeDocument{}, &GenerationError{Kind: last.kind, Attempts: attempts, Err: last.err}
}

func (s *Synthesizer) attempt(ctx context.Context, req llm.GenerateRequest, schema *llm.Schema) (model.ResumeDocument, *attemptError) {
	raw, err := s.Generator.Generate(ctx, req)
	if err != nil {
		return model.ResumeDocument{}, &attemptError{kind: FailureGeneration, err: err}
	}
	telemetry.Debug("synthesis.raw_response", map[string]any{"response": raw})

	doc, err := decodeDocument(raw, schema)
	if err != nil {
		return model.ResumeDocument{}, &attemptError{kind: FailureValidation, err: err}
	}
	return doc, nil
}

func decodeDocument(raw string, schema *llm.Schema) (model.ResumeDocument, error) {
	payload, err := extractJSONObject(raw)
	if err != nil {
		return model.ResumeDocument{}, err
	}

	var generic any
	if err := json.Unmarshal([]byte(payload), &generic); err != nil {
		return model.ResumeDocument{}, fmt.Errorf("decode response: %w", err)
	}
	if err := schema.Validate(generic); err != nil {
		return model.ResumeDocument{}, err
	}

	var doc model.ResumeDocument
	dec := json.NewDecoder(bytes.NewReader([]byte(payload)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return model.ResumeDocument{}, fmt.Errorf("decode resume document: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return model.ResumeDocument{}, err
	}
	return doc, nil
}

func (s *Synthesizer) newBackoff(attempts int) *retry.ExponentialBackoffRetryStrategy {
	if attempts <= 1 || s.BackoffBase <= 0 {
		return nil
	}
	maxInterval := s.BackoffMax
	if maxInterval < s.BackoffBase {
		maxInterval = s.BackoffBase
	}
	strategy, err := retry.NewExponentialBackoffRetryStrategy(s.BackoffBase, maxInterval, int32(attempts-1))
	if err != nil {
		return nil
	}
	return strategy
}

func wait(ctx context.Context, backoff *retry.ExponentialBackoffRetryStrategy) error {
	if backoff == nil {
		return ctx.Err()
	}
	next, ok := backoff.Next()
	if !ok {
		return nil
	}
	timer := time.NewTimer(next)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func extractJSONObject(raw string) (string, error) {
	payload := strings.TrimSpace(raw)
	if payload == "" {
		return "", errors.New("empty llm response")
	}
	if json.Valid([]byte(payload)) {
		return payload, nil
	}

	start := strings.Index(payload, "{")
	end := strings.LastIndex(payload, "}")
	if start == -1 || end == -1 || end <= start {
		return "", errors.New("no json object found")
	}

	candidate := payload[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return "", errors.New("invalid json object")
	}
	return candidate, nil
}

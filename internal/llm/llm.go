package llm

import (
	"context"
	"errors"
)

// Generator abstracts a generative-text backend that supports
// schema-constrained JSON output.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// GenerateRequest carries one structured generation call.
type GenerateRequest struct {
	SystemInstruction string
	Prompt            string
	Schema            *Schema
	Temperature       float32
	TopK              float32
}

// ErrNotConfigured is returned by the placeholder generator.
var ErrNotConfigured = errors.New("llm generator not configured")

// PlaceholderGenerator stands in when no backend credentials are configured.
type PlaceholderGenerator struct{}

// Generate returns ErrNotConfigured.
func (PlaceholderGenerator) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	_ = ctx
	_ = req
	return "", ErrNotConfigured
}

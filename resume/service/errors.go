package service

import "fmt"

// FailureKind classifies why synthesis gave up.
type FailureKind string

const (
	// FailureValidation means the backend answered but the payload was empty,
	// did not match the schema, or failed document validation.
	FailureValidation FailureKind = "validation"
	// FailureGeneration means the backend call itself failed.
	FailureGeneration FailureKind = "generation"
)

// GenerationError is returned once every attempt has failed. Kind reflects
// the final attempt.
type GenerationError struct {
	Kind     FailureKind
	Attempts int
	Err      error
}

func (e *GenerationError) Error() string {
	switch e.Kind {
	case FailureValidation:
		return fmt.Sprintf("llm structure failed after %d attempts: %v", e.Attempts, e.Err)
	default:
		return fmt.Sprintf("llm generation failed after %d attempts: %v", e.Attempts, e.Err)
	}
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

package resumes

import "errors"

var (
	// ErrInvalidInput marks a payload that failed validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoDataSource is returned when neither a GitHub URL nor manual
	// experience was supplied.
	ErrNoDataSource = errors.New("either github_url or manual_experience is required")
	// ErrNoUsableSource is returned when the GitHub profile yielded nothing
	// and there is no manual experience to fall back on.
	ErrNoUsableSource = errors.New("no usable GitHub data and no manual experience")
)

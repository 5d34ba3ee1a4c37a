package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyPrompt is wrapped inside a ClassificationError when the input
// prompt is empty or whitespace-only.
var ErrEmptyPrompt = errors.New("prompt is empty")

// ClassificationError covers every failure of the sentiment model boundary:
// service unreachable, unusable response shape, or invalid input.
type ClassificationError struct {
	Provider string
	Err      error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("sentiment classification failed (provider=%s): %v", e.Provider, e.Err)
}

func (e *ClassificationError) Unwrap() error { return e.Err }

// GenerationError covers every failure of the text generation model boundary.
type GenerationError struct {
	Provider string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("text generation failed (provider=%s): %v", e.Provider, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// TemplateLookupError marks a sentiment label with no seed template.
// Construction-time validation makes this unreachable at runtime; hitting
// it means a programming error, not a caller mistake.
type TemplateLookupError struct {
	Label SentimentLabel
}

func (e *TemplateLookupError) Error() string {
	return fmt.Sprintf("no seed template for sentiment label %q", e.Label)
}

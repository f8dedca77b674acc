package service

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a recipe, ingredient or other record
// does not exist. Handlers translate it to a 404.
var ErrNotFound = errors.New("record not found")

// ValidationError reports malformed caller input. Never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ParseError reports a provider response that failed schema validation.
// RecipeIndex is -1 for document-level failures.
type ParseError struct {
	RecipeIndex int
	Field       string
	Reason      string
}

func (e *ParseError) Error() string {
	if e.RecipeIndex < 0 {
		if e.Field != "" {
			return fmt.Sprintf("invalid generation response: %s: %s", e.Field, e.Reason)
		}
		return fmt.Sprintf("invalid generation response: %s", e.Reason)
	}
	return fmt.Sprintf("recipe %d: field %q: %s", e.RecipeIndex, e.Field, e.Reason)
}

// PersistenceError reports a write failure while storing one generated
// recipe. Individual failures are logged and skipped; the batch only
// fails (as a GenerationError) when every draft fails.
type PersistenceError struct {
	RecipeName string
	Err        error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to store recipe %q: %v", e.RecipeName, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// GenerationError is the single failure surfaced when the generation
// pipeline cannot produce recipes: provider retries exhausted, response
// failed validation, or nothing could be persisted.
type GenerationError struct {
	Attempts int
	Err      error
}

func (e *GenerationError) Error() string {
	if e.Attempts > 0 {
		return fmt.Sprintf("recipe generation failed after %d attempts: %v", e.Attempts, e.Err)
	}
	return fmt.Sprintf("recipe generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

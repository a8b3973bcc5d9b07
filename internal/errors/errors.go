// Package errors provides contextual error handling with user-facing suggestions.
package errors

import (
	"errors"
	"fmt"
)

// Common suggestion constants for user-facing error messages
const (
	SuggestionResetConfig = "Run 'untabify config reset' to restore the default configuration, or edit the file so every tab size is between 1 and 64"
	SuggestionCheckPath   = "Verify the path exists and is a directory"
	SuggestionQuoteGlob   = "Quote the glob so the shell does not expand it, e.g. -g '*.sql'"
	SuggestionTabSize     = "Use a tab size between 1 and 64"
	SuggestionUseYes      = "Re-run with --yes to skip confirmation"
)

// ContextError wraps an error with additional context and optional user-facing suggestion.
type ContextError struct {
	Context    string // Contextual information (e.g., "while reading config")
	Err        error  // The underlying error
	Suggestion string // Optional user-facing suggestion
}

// Error implements the error interface.
// Returns "context: error" format, or just the error message if no context.
func (e *ContextError) Error() string {
	if e.Err == nil {
		return ""
	}
	if e.Context == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Context, e.Err.Error())
}

// Unwrap returns the underlying error for errors.Is and errors.As compatibility.
func (e *ContextError) Unwrap() error {
	return e.Err
}

// WithContext wraps an error with contextual information.
// Returns nil if the error is nil.
func WithContext(err error, context string) error {
	if err == nil {
		return nil
	}
	return &ContextError{
		Context: context,
		Err:     err,
	}
}

// WithSuggestion adds a user-facing suggestion to an error.
// Returns nil if the error is nil.
func WithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}

	// If it's already a ContextError, add the suggestion to it
	if ce, ok := err.(*ContextError); ok {
		ce.Suggestion = suggestion
		return ce
	}

	// Otherwise, wrap it in a new ContextError with just the suggestion
	return &ContextError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// ContainsSuggestion checks if an error has a user-facing suggestion.
// Returns false if the error is nil.
// Uses errors.As to properly unwrap wrapped errors.
func ContainsSuggestion(err error) bool {
	var ce *ContextError
	return errors.As(err, &ce) && ce.Suggestion != ""
}

// GetSuggestion extracts the user-facing suggestion from an error.
// Returns an empty string if the error is nil or has no suggestion.
// Uses errors.As to properly unwrap wrapped errors.
func GetSuggestion(err error) string {
	var ce *ContextError
	if errors.As(err, &ce) {
		return ce.Suggestion
	}
	return ""
}

package cmd

import (
	"errors"

	"github.com/salmonumbrella/untabify/internal/config"
	"github.com/salmonumbrella/untabify/internal/convert"
	cerrors "github.com/salmonumbrella/untabify/internal/errors"
)

// mapCommandError adds common suggestions for known error types.
func mapCommandError(err error) error {
	if err == nil {
		return nil
	}
	if cerrors.ContainsSuggestion(err) {
		return err
	}

	var corrupt *config.CorruptError
	var pattern *convert.PatternError
	switch {
	case errors.As(err, &corrupt):
		return cerrors.WithSuggestion(err, cerrors.SuggestionResetConfig)
	case errors.As(err, &pattern):
		return cerrors.WithSuggestion(err, cerrors.SuggestionQuoteGlob)
	case errors.Is(err, convert.ErrNotDirectory):
		return cerrors.WithSuggestion(err, cerrors.SuggestionCheckPath)
	}

	return err
}

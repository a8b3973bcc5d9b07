package outfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/salmonumbrella/untabify/internal/filter"
)

type Mode int

const (
	Text Mode = iota
	JSON
)

// ParseMode maps a --output value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return Text, nil
	case "json":
		return JSON, nil
	default:
		return Text, fmt.Errorf("unknown output format %q (want text or json)", s)
	}
}

// WriteJSON writes v as indented JSON to w.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PrintJSON prints v as JSON to stdout.
func PrintJSON(v any) error {
	return WriteJSON(os.Stdout, v)
}

// WriteJSONFiltered writes v as indented JSON to w, applying a JQ filter expression.
// If query is empty, behaves like WriteJSON.
func WriteJSONFiltered(w io.Writer, v any, query string) error {
	if query == "" {
		return WriteJSON(w, v)
	}

	result, err := filter.Apply(v, query)
	if err != nil {
		return err
	}

	return WriteJSON(w, result)
}

// PrintJSONFiltered prints v as JSON to stdout, applying a JQ filter expression.
// If query is empty, behaves like PrintJSON.
func PrintJSONFiltered(v any, query string) error {
	return WriteJSONFiltered(os.Stdout, v, query)
}

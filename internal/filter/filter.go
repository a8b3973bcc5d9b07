// Package filter provides JQ-compatible filtering for JSON output.
package filter

import (
	"encoding/json"
	"fmt"

	"github.com/itchyny/gojq"
)

// Apply applies a JQ filter expression to the input data. Structs and typed
// maps are converted to plain JSON values first, since gojq only walks
// map[string]any and []any.
func Apply(data any, expression string) (any, error) {
	if expression == "" {
		return data, nil
	}

	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}

	input, err := normalize(data)
	if err != nil {
		return nil, err
	}

	iter := query.Run(input)

	var results []any
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			return nil, fmt.Errorf("filter error: %w", err)
		}
		results = append(results, v)
	}

	// Return single result unwrapped, multiple as array
	if len(results) == 1 {
		return results[0], nil
	}
	return results, nil
}

func normalize(data any) (any, error) {
	switch data.(type) {
	case nil, bool, string, float64, int, map[string]any, []any:
		return data, nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode filter input: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode filter input: %w", err)
	}
	return out, nil
}

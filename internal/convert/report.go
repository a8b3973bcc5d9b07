package convert

import (
	"fmt"

	"go.uber.org/multierr"
)

// Status is the outcome of one file.
type Status string

const (
	StatusConverted Status = "converted"
	StatusUnchanged Status = "unchanged"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Result is the outcome of converting one file.
type Result struct {
	Path    string
	TabSize int
	Status  Status
	Bytes   int
	Err     error
}

// Report collects the results of a directory conversion in selection order.
type Report struct {
	Root    string
	Pattern string
	DryRun  bool
	Results []Result
}

// Count returns how many results have status s.
func (r *Report) Count(s Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}

// Failed returns the failed results.
func (r *Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Status == StatusFailed {
			out = append(out, res)
		}
	}
	return out
}

// Err combines the errors of all failed files, or returns nil.
func (r *Report) Err() error {
	var err error
	for _, res := range r.Failed() {
		err = multierr.Append(err, fmt.Errorf("%s: %w", res.Path, res.Err))
	}
	return err
}

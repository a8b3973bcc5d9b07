package cmd

import (
	"github.com/salmonumbrella/untabify/internal/config"
	"github.com/salmonumbrella/untabify/internal/convert"
)

// ResultOutput is the JSON form of one converted file.
type ResultOutput struct {
	Path    string `json:"path"`
	Status  string `json:"status"`
	TabSize int    `json:"tabSize,omitempty"`
	Bytes   int    `json:"bytes,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ReportOutput is the JSON form of a directory run.
type ReportOutput struct {
	Root      string         `json:"root"`
	Pattern   string         `json:"pattern,omitempty"`
	DryRun    bool           `json:"dryRun"`
	Converted int            `json:"converted"`
	Unchanged int            `json:"unchanged"`
	Skipped   int            `json:"skipped"`
	Failed    int            `json:"failed"`
	Results   []ResultOutput `json:"results"`
}

// ConfigOutput is the JSON form of the configuration with its location.
type ConfigOutput struct {
	Path     string         `json:"path"`
	TabSizes map[string]int `json:"tab_sizes"`
}

func resultToOutput(r convert.Result) ResultOutput {
	out := ResultOutput{
		Path:    r.Path,
		Status:  string(r.Status),
		TabSize: r.TabSize,
		Bytes:   r.Bytes,
	}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	return out
}

func reportToOutput(report *convert.Report) ReportOutput {
	results := make([]ResultOutput, 0, len(report.Results))
	for _, r := range report.Results {
		results = append(results, resultToOutput(r))
	}
	return ReportOutput{
		Root:      report.Root,
		Pattern:   report.Pattern,
		DryRun:    report.DryRun,
		Converted: report.Count(convert.StatusConverted),
		Unchanged: report.Count(convert.StatusUnchanged),
		Skipped:   report.Count(convert.StatusSkipped),
		Failed:    report.Count(convert.StatusFailed),
		Results:   results,
	}
}

func configToOutput(path string, cfg *config.TabConfig) ConfigOutput {
	return ConfigOutput{Path: path, TabSizes: cfg.TabSizes}
}

package cmd

import (
	"fmt"

	"github.com/salmonumbrella/untabify/internal/convert"
)

// printConvertResults prints the outcome of a directory run.
//
// Example output:
//
//	Converted 5 of 7 files (2 unchanged)
//	Converted 3 of 6 files (1 unchanged, 2 failed):
//	  db/a.sql: read: permission denied
//	  db/b.sql: rename temp file: no space left on device
func printConvertResults(report *convert.Report) {
	action := "Converted"
	if report.DryRun {
		action = "Would convert"
	}

	converted := report.Count(convert.StatusConverted)
	unchanged := report.Count(convert.StatusUnchanged)
	skipped := report.Count(convert.StatusSkipped)
	failed := report.Count(convert.StatusFailed)

	detail := fmt.Sprintf("%d unchanged", unchanged)
	if skipped > 0 {
		detail += fmt.Sprintf(", %d skipped", skipped)
	}

	if report.DryRun {
		printDryRunList(report)
	}

	if failed == 0 {
		fmt.Printf("%s %d of %d files (%s)\n", action, converted, len(report.Results), detail)
		return
	}

	fmt.Printf("%s %d of %d files (%s, %d failed):\n", action, converted, len(report.Results), detail, failed)
	for _, r := range report.Failed() {
		fmt.Printf("  %s: %v\n", r.Path, r.Err)
	}
}

// printFileResult prints the outcome of a single-file run.
func printFileResult(res convert.Result, dryRun bool) {
	switch {
	case res.Status == convert.StatusUnchanged:
		fmt.Printf("%s unchanged\n", res.Path)
	case dryRun:
		fmt.Printf("%s would be converted (tab size %d)\n", res.Path, res.TabSize)
	default:
		fmt.Printf("%s converted (tab size %d)\n", res.Path, res.TabSize)
	}
}

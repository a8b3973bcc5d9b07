package cmd

import (
	"fmt"

	"github.com/salmonumbrella/untabify/internal/convert"
)

// wouldConvert lists the files a dry run found tabs in.
func wouldConvert(report *convert.Report) []string {
	var paths []string
	for _, r := range report.Results {
		if r.Status == convert.StatusConverted {
			paths = append(paths, r.Path)
		}
	}
	return paths
}

func printDryRunList(report *convert.Report) {
	paths := wouldConvert(report)
	if len(paths) == 0 {
		return
	}
	printList(fmt.Sprintf("Would convert %d files:", len(paths)), paths)
}

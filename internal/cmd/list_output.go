package cmd

import (
	"fmt"
	"os"
)

func printList(header string, items []string) {
	fmt.Println(header)
	for _, item := range items {
		fmt.Printf("  - %s\n", item)
	}
}

// printNoResults reports an empty selection on stderr so stdout stays clean.
func printNoResults(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/salmonumbrella/untabify/internal/logging"
	"github.com/spf13/cobra"
)

func TestRunE_FillsUIAndLoggerFromContext(t *testing.T) {
	logger := logging.New(&bytes.Buffer{}, true)
	cmd := &cobra.Command{}
	cmd.SetContext(logging.WithLogger(context.Background(), logger))

	app := &App{Flags: &rootFlags{}}
	var got *App
	run := runE(app, func(_ *cobra.Command, _ []string, a *App) error {
		got = a
		return nil
	})
	if err := run(cmd, nil); err != nil {
		t.Fatalf("runE error: %v", err)
	}

	if got.UI == nil {
		t.Fatal("expected UI to be set")
	}
	if got.Logger != logger {
		t.Fatal("expected the context logger")
	}
}

func TestRunDir_DebugLogsThroughAppLogger(t *testing.T) {
	setupConfig(t)
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "\ta"})

	_, stderr, err := runCLI(t, "--debug", "dir", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Contains([]byte(stderr), []byte(`msg="starting conversion"`)) {
		t.Fatalf("expected debug record, got %q", stderr)
	}
}

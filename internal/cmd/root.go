package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	cerrors "github.com/salmonumbrella/untabify/internal/errors"
	"github.com/salmonumbrella/untabify/internal/logging"
	"github.com/salmonumbrella/untabify/internal/outfmt"
	"github.com/salmonumbrella/untabify/internal/ui"
	"github.com/spf13/cobra"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

type rootFlags struct {
	Color  string
	Output string
	Debug  bool
	Query  string
	Yes    bool
	Config string
}

type contextKey string

const (
	outputModeKey contextKey = "outputMode"
	queryKey      contextKey = "query"
)

// Execute runs the CLI with args and prints any error to stderr.
func Execute(args []string) error {
	return ExecuteContext(context.Background(), args)
}

// ExecuteContext is Execute with a caller-supplied context, so an interrupt
// stops a directory run between files.
func ExecuteContext(ctx context.Context, args []string) error {
	app := NewApp()
	root := NewRootCmd(app)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err != nil {
		if app.Flags.Output == "json" {
			payload := map[string]any{
				"error": map[string]any{
					"message": err.Error(),
				},
			}
			if cerrors.ContainsSuggestion(err) {
				payload["error"].(map[string]any)["suggestion"] = cerrors.GetSuggestion(err)
			}
			_ = outfmt.WriteJSON(os.Stderr, payload)
		} else {
			// Print the main error
			fmt.Fprintln(os.Stderr, "Error:", err)

			// Print suggestion if available
			if cerrors.ContainsSuggestion(err) {
				fmt.Fprintln(os.Stderr, "")
				fmt.Fprintln(os.Stderr, "Suggestion:", cerrors.GetSuggestion(err))
			}
		}
	}
	return err
}

func NewRootCmd(app *App) *cobra.Command {
	var opts convertOptions
	var dir string

	root := &cobra.Command{
		Use:           "untabify [path-or-glob]",
		Short:         "Replace tabs with spaces using per-extension tab sizes",
		Version:       Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: false,
		},
		Long: strings.TrimSpace(`
Replace tab characters with spaces so every tab ends on the next tab stop.

The tab size comes from --tab-size when given, otherwise from the configured
size for the file's extension, otherwise from the configured default.

Called with a single argument, an absolute path converts that file and
anything else is a glob matched against every file under --dir.`),
		Example: strings.TrimSpace(`
  # Convert one file
  untabify file ./main.sql
  untabify /abs/path/query.sql

  # Convert every SQL file below a directory
  untabify dir ./db --glob '*.sql'
  untabify '*.sql' --dir ./db

  # Preview without writing
  untabify dir . --dry-run

  # Configure tab sizes
  untabify config set tab-size 8 --extension py
  untabify config print`),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// UI (must come first)
			u := ui.New(app.Flags.Color)
			ctx := ui.WithUI(cmd.Context(), u)
			app.UI = u

			// Output format
			mode, err := outfmt.ParseMode(app.Flags.Output)
			if err != nil {
				return err
			}
			ctx = context.WithValue(ctx, outputModeKey, mode)

			// Query filter
			ctx = context.WithValue(ctx, queryKey, app.Flags.Query)

			// Logging
			logger := logging.Setup(app.Flags.Debug)
			ctx = logging.WithLogger(ctx, logger)
			app.Logger = logger

			ctx = WithApp(ctx, app)
			cmd.SetContext(ctx)
			return nil
		},
		RunE: runE(app, func(cmd *cobra.Command, args []string, app *App) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			if err := opts.validate(cmd); err != nil {
				return err
			}

			target := args[0]
			if filepath.IsAbs(target) {
				return runFile(cmd, app, target, opts)
			}
			if dir == "" {
				dir = "."
			}
			return runDir(cmd, app, dir, target, opts)
		}),
	}
	root.PersistentFlags().StringVar(&app.Flags.Color, "color", app.Flags.Color, "Color output: auto|always|never")
	root.PersistentFlags().StringVar(&app.Flags.Output, "output", app.Flags.Output, "Output format: text|json")
	root.PersistentFlags().BoolVar(&app.Flags.Debug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&app.Flags.Query, "query", "", "JQ filter expression for JSON output")
	root.PersistentFlags().BoolVarP(&app.Flags.Yes, "yes", "y", false, "Skip confirmation prompts (non-interactive)")
	root.PersistentFlags().StringVar(&app.Flags.Config, "config", app.Flags.Config, "Path to the config file")

	opts.bind(root)
	root.Flags().StringVarP(&dir, "dir", "d", "", "Directory to search when the argument is a glob (default \".\")")

	root.AddCommand(newFileCmd(app))
	root.AddCommand(newDirCmd(app))
	root.AddCommand(newConfigCmd(app))
	return root
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package cmd

import (
	"context"
	"os"

	"github.com/salmonumbrella/untabify/internal/config"
	cerrors "github.com/salmonumbrella/untabify/internal/errors"
	"github.com/salmonumbrella/untabify/internal/logging"
	"github.com/salmonumbrella/untabify/internal/outfmt"
	"github.com/salmonumbrella/untabify/internal/ui"
	"github.com/spf13/cobra"
)

type appKey struct{}

type App struct {
	Flags  *rootFlags
	UI     *ui.UI
	Logger Logger
}

// Logger is the minimal interface we need from slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
}

func NewApp() *App {
	flags := rootFlags{
		Color:  envOr("UNTABIFY_COLOR", "auto"),
		Output: envOr("UNTABIFY_OUTPUT", "text"),
		Config: os.Getenv(config.PathEnv),
	}
	return &App{Flags: &flags}
}

func WithApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, appKey{}, app)
}

func AppFromContext(ctx context.Context) *App {
	if app, ok := ctx.Value(appKey{}).(*App); ok {
		return app
	}
	return nil
}

// runE wraps a cobra RunE to inject the App and normalize errors.
func runE(app *App, fn func(cmd *cobra.Command, args []string, app *App) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if app == nil {
			app = AppFromContext(cmd.Context())
		}
		if app == nil {
			app = &App{Flags: &rootFlags{}}
		}
		if app.UI == nil {
			app.UI = ui.FromContext(cmd.Context())
		}
		if app.Logger == nil {
			app.Logger = logging.FromContext(cmd.Context())
		}
		return mapCommandError(fn(cmd, args, app))
	}
}

func isJSON(ctx context.Context) bool {
	mode, ok := ctx.Value(outputModeKey).(outfmt.Mode)
	return ok && mode == outfmt.JSON
}

func queryFrom(ctx context.Context) string {
	query, _ := ctx.Value(queryKey).(string)
	return query
}

func printJSON(cmd *cobra.Command, v any) error {
	return outfmt.PrintJSONFiltered(v, queryFrom(cmd.Context()))
}

func (a *App) Confirm(cmd *cobra.Command, prompt string, accepted ...string) (bool, error) {
	if isJSON(cmd.Context()) || (a.Flags != nil && a.Flags.Yes) {
		return true, nil
	}
	return confirmPrompt(os.Stderr, prompt, accepted...)
}

// ConfigStore returns the store for --config, UNTABIFY_CONFIG or the
// platform default location.
func (a *App) ConfigStore() (*config.Store, error) {
	path := ""
	if a.Flags != nil {
		path = a.Flags.Config
	}
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return nil, err
		}
	}
	return config.NewStore(path), nil
}

// LoadConfig loads the tab configuration, creating it on first use.
func (a *App) LoadConfig() (*config.Store, *config.TabConfig, error) {
	store, err := a.ConfigStore()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := store.Load()
	if err != nil {
		return nil, nil, err
	}
	return store, cfg, nil
}

// Suggest wraps an error with a user-facing suggestion.
func Suggest(err error, suggestion string) error {
	return cerrors.WithSuggestion(err, suggestion)
}

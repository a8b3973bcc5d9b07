package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/salmonumbrella/untabify/internal/config"
	cerrors "github.com/salmonumbrella/untabify/internal/errors"
	"github.com/salmonumbrella/untabify/internal/outfmt"
	"github.com/salmonumbrella/untabify/internal/tabsize"
	"github.com/salmonumbrella/untabify/internal/validation"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Aliases: []string{"cfg"},
		Short:   "Manage configuration",
	}

	cmd.AddCommand(newConfigPathCmd(app))
	cmd.AddCommand(newConfigPrintCmd(app))
	cmd.AddCommand(newConfigResetCmd(app))
	cmd.AddCommand(newConfigSetCmd(app))
	cmd.AddCommand(newConfigUnsetCmd(app))

	return cmd
}

func newConfigPathCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the path of the config file",
		Args:  cobra.NoArgs,
		RunE: runE(app, func(cmd *cobra.Command, args []string, app *App) error {
			store, err := app.ConfigStore()
			if err != nil {
				return err
			}

			if isJSON(cmd.Context()) {
				return printJSON(cmd, map[string]any{"path": store.Path})
			}
			fmt.Println(store.Path)
			return nil
		}),
	}
}

func newConfigPrintCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "print",
		Aliases: []string{"show"},
		Short:   "Print the configured tab sizes",
		Args:    cobra.NoArgs,
		RunE: runE(app, func(cmd *cobra.Command, args []string, app *App) error {
			store, cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}

			if isJSON(cmd.Context()) {
				return printJSON(cmd, configToOutput(store.Path, cfg))
			}

			rows := make([][]any, 0, len(cfg.TabSizes))
			for _, e := range cfg.Entries() {
				rows = append(rows, []any{e.Extension, e.TabSize})
			}
			outfmt.WriteTable(os.Stdout, []string{"Extension", "Tab size"}, rows)
			return nil
		}),
	}
}

func newConfigResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset the config back to default settings",
		Long: `Reset the config back to default settings.

This works even when the current config file cannot be parsed.`,
		Args: cobra.NoArgs,
		RunE: runE(app, func(cmd *cobra.Command, args []string, app *App) error {
			store, err := app.ConfigStore()
			if err != nil {
				return err
			}

			ok, err := app.Confirm(cmd, fmt.Sprintf("Reset %s to defaults? [y/N] ", store.Path), "y", "yes")
			if err != nil {
				return err
			}
			if !ok {
				app.UI.Warning("Reset cancelled")
				return nil
			}

			cfg, err := store.Reset()
			if err != nil {
				return err
			}

			if isJSON(cmd.Context()) {
				return printJSON(cmd, configToOutput(store.Path, cfg))
			}
			app.UI.Success("Config has been reset to default values")
			return nil
		}),
	}
}

func newConfigSetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set configuration values",
	}
	cmd.AddCommand(newConfigSetTabSizeCmd(app))
	return cmd
}

func newConfigSetTabSizeCmd(app *App) *cobra.Command {
	var extension string

	cmd := &cobra.Command{
		Use:   "tab-size <size>",
		Short: "Set the tab size for an extension, or the default",
		Long: `Set the tab size for an extension, or the default when --extension is omitted.

Extensions are matched case-insensitively and may be given with or without
the leading dot.

Examples:
  untabify config set tab-size 2
  untabify config set tab-size 8 --extension py
  untabify config set tab-size 5 -e .SQL`,
		Args: cobra.ExactArgs(1),
		RunE: runE(app, func(cmd *cobra.Command, args []string, app *App) error {
			size, err := strconv.Atoi(args[0])
			if err != nil {
				return Suggest(fmt.Errorf("invalid tab size %q", args[0]), cerrors.SuggestionTabSize)
			}

			store, cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Set(extension, size); err != nil {
				if size < 1 || size > validation.MaxTabSize {
					return Suggest(err, cerrors.SuggestionTabSize)
				}
				return err
			}
			if err := store.Save(cfg); err != nil {
				return err
			}

			key, _ := config.NormalizeExtension(extension)
			if isJSON(cmd.Context()) {
				return printJSON(cmd, map[string]any{
					"extension": key,
					"tabSize":   size,
				})
			}
			if key == tabsize.DefaultKey {
				app.UI.Success(fmt.Sprintf("Set default tab size to %d", size))
			} else {
				app.UI.Success(fmt.Sprintf("Set tab size for extension %s to %d", key, size))
			}
			return nil
		}),
	}
	cmd.Flags().StringVarP(&extension, "extension", "e", "", "The extension to configure (default: the fallback size)")

	return cmd
}

func newConfigUnsetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unset <extension>",
		Short: "Remove the tab size for an extension so it uses the default",
		Args:  cobra.ExactArgs(1),
		RunE: runE(app, func(cmd *cobra.Command, args []string, app *App) error {
			store, cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}

			removed, err := cfg.Unset(args[0])
			if err != nil {
				return err
			}
			if removed {
				if err := store.Save(cfg); err != nil {
					return err
				}
			}

			key, _ := config.NormalizeExtension(args[0])
			if isJSON(cmd.Context()) {
				return printJSON(cmd, map[string]any{
					"extension": key,
					"removed":   removed,
				})
			}
			if !removed {
				app.UI.Warning(fmt.Sprintf("No tab size configured for extension %s", key))
				return nil
			}
			app.UI.Success(fmt.Sprintf("Removed tab size for extension %s", key))
			return nil
		}),
	}
}

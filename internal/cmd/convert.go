package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/salmonumbrella/untabify/internal/config"
	"github.com/salmonumbrella/untabify/internal/convert"
	cerrors "github.com/salmonumbrella/untabify/internal/errors"
	"github.com/salmonumbrella/untabify/internal/expand"
	"github.com/salmonumbrella/untabify/internal/validation"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// convertOptions are the flags shared by every converting command.
type convertOptions struct {
	TabSize      int
	TrimTrailing bool
	DryRun       bool
	Jobs         int
}

func (o *convertOptions) bind(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&o.TabSize, "tab-size", "t", 0, "Spaces per tab stop, overriding the configured size")
	cmd.Flags().BoolVar(&o.TrimTrailing, "trim-trailing", false, "Also remove trailing whitespace from every line")
	cmd.Flags().BoolVarP(&o.DryRun, "dry-run", "n", false, "Report what would change without writing")
	cmd.Flags().IntVarP(&o.Jobs, "jobs", "j", 1, "Number of files converted in parallel")
}

func (o *convertOptions) validate(cmd *cobra.Command) error {
	if cmd.Flags().Changed("tab-size") {
		if err := validation.TabSize("--tab-size", o.TabSize); err != nil {
			return Suggest(err, cerrors.SuggestionTabSize)
		}
	}
	return validation.PositiveInt("--jobs", o.Jobs)
}

func (o *convertOptions) converter(cfg *config.TabConfig) *convert.Converter {
	c := convert.New(cfg)
	c.Override = o.TabSize
	c.Options = expand.Options{TrimTrailing: o.TrimTrailing}
	c.DryRun = o.DryRun
	c.Jobs = o.Jobs
	return c
}

func newFileCmd(app *App) *cobra.Command {
	var opts convertOptions

	cmd := &cobra.Command{
		Use:   "file <path>",
		Short: "Convert tabs in a single file",
		Long: `Convert tabs in a single file.

A missing file is reported and skipped. Files without tabs are left untouched.

Examples:
  untabify file query.sql
  untabify file main.go --tab-size 8
  untabify file notes.txt --trim-trailing --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: runE(app, func(cmd *cobra.Command, args []string, app *App) error {
			if err := opts.validate(cmd); err != nil {
				return err
			}
			return runFile(cmd, app, args[0], opts)
		}),
	}
	opts.bind(cmd)
	_ = cmd.Flags().MarkHidden("jobs")

	return cmd
}

func newDirCmd(app *App) *cobra.Command {
	var opts convertOptions
	var pattern string

	cmd := &cobra.Command{
		Use:     "dir <root>",
		Aliases: []string{"directory"},
		Short:   "Convert tabs in every matching file below a directory",
		Long: `Convert tabs in every regular file below a directory.

--glob is matched against the whole path, and * also matches '/', so
'*.sql' selects SQL files at any depth. Symlinks are not followed. A file
that cannot be read or written is reported and the run continues.

Examples:
  untabify dir .
  untabify dir ./db --glob '*.sql'
  untabify dir ./src --glob '*.go' --tab-size 8 --jobs 4`,
		Args: cobra.ExactArgs(1),
		RunE: runE(app, func(cmd *cobra.Command, args []string, app *App) error {
			if err := opts.validate(cmd); err != nil {
				return err
			}
			return runDir(cmd, app, args[0], pattern, opts)
		}),
	}
	opts.bind(cmd)
	cmd.Flags().StringVarP(&pattern, "glob", "g", "", "Only convert files whose path matches this glob")

	return cmd
}

func runFile(cmd *cobra.Command, app *App, path string, opts convertOptions) error {
	_, cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	jsonMode := isJSON(ctx)
	if !jsonMode {
		app.UI.Info(fmt.Sprintf("Untabifying file: %s", path))
	}

	res := opts.converter(cfg).ConvertFile(ctx, path)
	if jsonMode {
		if err := printJSON(cmd, resultToOutput(res)); err != nil {
			return err
		}
	}

	switch {
	case res.Status == convert.StatusSkipped && errors.Is(res.Err, fs.ErrNotExist):
		if !jsonMode {
			app.UI.Warning(fmt.Sprintf("File %q does not exist", path))
		}
		return nil
	case res.Status == convert.StatusSkipped:
		if !jsonMode {
			app.UI.Warning(fmt.Sprintf("Skipped %s: %v", path, res.Err))
		}
		return nil
	case res.Status == convert.StatusFailed:
		return cerrors.WithContext(res.Err, "while converting "+path)
	}

	if !jsonMode {
		printFileResult(res, opts.DryRun)
	}
	return nil
}

func runDir(cmd *cobra.Command, app *App, root, pattern string, opts convertOptions) error {
	// Compile before anything else so a bad glob never touches a file.
	if pattern != "" {
		if _, err := convert.CompilePattern(pattern); err != nil {
			return err
		}
	}

	_, cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	jsonMode := isJSON(ctx)
	conv := opts.converter(cfg)

	var bar *progressbar.ProgressBar
	if !jsonMode {
		app.UI.Info(fmt.Sprintf("Untabifying directory: %s", root))
		conv.OnSelect = func(files []string) {
			app.Logger.Debug("starting conversion", "root", root, "files", len(files), "jobs", opts.Jobs)
			if !app.Flags.Debug {
				bar = app.UI.Progress(len(files), "Untabifying")
			}
		}
		conv.OnResult = func(r convert.Result) {
			switch {
			case bar != nil:
				_ = bar.Add(1)
			case r.Status == convert.StatusFailed:
				app.UI.Error(fmt.Sprintf("Failed to untabify %s: %v", r.Path, r.Err))
			default:
				app.UI.Info(fmt.Sprintf("Untabifying file: %s", r.Path))
			}
		}
	}

	report, err := conv.ConvertDir(ctx, root, pattern)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		if report == nil {
			return cerrors.WithContext(err, "while walking "+root)
		}
		return err
	}

	if jsonMode {
		if err := printJSON(cmd, reportToOutput(report)); err != nil {
			return err
		}
	} else {
		if len(report.Results) == 0 {
			printNoResults("No files matched")
			return nil
		}
		printConvertResults(report)
	}

	if failed := report.Count(convert.StatusFailed); failed > 0 {
		app.Logger.Debug("conversion failures", "error", report.Err())
		return fmt.Errorf("%d of %d files could not be converted", failed, len(report.Results))
	}
	return nil
}

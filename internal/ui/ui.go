// Package ui provides terminal UI utilities with color support.
// It handles color output with automatic detection, respects NO_COLOR,
// and provides Success, Error, Warning, and Info message helpers plus a
// progress bar for long directory runs.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

type UI struct {
	w     io.Writer
	out   *termenv.Output
	color bool
	tty   bool
}

type contextKey struct{}

// New creates a UI writing to stderr with the specified color mode.
// colorMode can be "never", "always", or "auto".
// The NO_COLOR environment variable overrides color=true.
func New(colorMode string) *UI {
	return NewWithWriter(os.Stderr, colorMode)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, colorMode string) *UI {
	out := termenv.NewOutput(w)

	tty := false
	if f, ok := w.(*os.File); ok {
		tty = term.IsTerminal(int(f.Fd()))
	}

	var color bool
	switch colorMode {
	case "never":
		color = false
	case "always":
		color = true
	default: // auto
		color = tty && out.ColorProfile() != termenv.Ascii
	}

	if os.Getenv("NO_COLOR") != "" {
		color = false
	}

	return &UI{w: w, out: out, color: color, tty: tty}
}

// IsTerminal reports whether messages go to an interactive terminal.
func (u *UI) IsTerminal() bool {
	return u.tty
}

func (u *UI) print(msg, color string) {
	if u.color && color != "" {
		fmt.Fprintln(u.w, u.out.String(msg).Foreground(u.out.Color(color)))
		return
	}
	fmt.Fprintln(u.w, msg)
}

// Success prints a success message in green.
func (u *UI) Success(msg string) {
	u.print(msg, "2")
}

// Error prints an error message in red.
func (u *UI) Error(msg string) {
	u.print(msg, "1")
}

// Warning prints a warning message in yellow.
func (u *UI) Warning(msg string) {
	u.print(msg, "3")
}

// Info prints an informational message.
func (u *UI) Info(msg string) {
	u.print(msg, "")
}

// Progress returns a bar counting total files, or nil when the output is not
// a terminal.
func (u *UI) Progress(total int, description string) *progressbar.ProgressBar {
	if !u.IsTerminal() || total == 0 {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(u.w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionEnableColorCodes(u.color),
	)
}

// WithUI stores the UI in the context.
func WithUI(ctx context.Context, u *UI) context.Context {
	return context.WithValue(ctx, contextKey{}, u)
}

// FromContext retrieves the UI from the context.
// If no UI is found in the context, returns New("auto").
func FromContext(ctx context.Context) *UI {
	if u, ok := ctx.Value(contextKey{}).(*UI); ok {
		return u
	}
	return New("auto")
}

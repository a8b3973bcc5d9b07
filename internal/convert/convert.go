// Package convert selects files and rewrites their tabs as spaces.
package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gobwas/glob"
	"github.com/salmonumbrella/untabify/internal/expand"
	"github.com/salmonumbrella/untabify/internal/fsutil"
	"github.com/salmonumbrella/untabify/internal/logging"
	"github.com/salmonumbrella/untabify/internal/tabsize"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNotDirectory is returned when a directory walk is given something else.
	ErrNotDirectory = errors.New("not a directory")
	// ErrIsDirectory is returned when file mode is given a directory.
	ErrIsDirectory = errors.New("is a directory")
	// ErrBinary marks files left alone because they look binary.
	ErrBinary = errors.New("binary file")
)

// sniffLen is how many leading bytes are checked for NUL.
const sniffLen = 8000

// maxLinks bounds symlink resolution, as the kernel's ELOOP limit does.
const maxLinks = 40

// ErrTooManyLinks is returned for symlink chains longer than maxLinks.
var ErrTooManyLinks = errors.New("too many levels of symbolic links")

// PatternError reports a glob that does not compile.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid glob %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// Request is one file to convert.
type Request struct {
	Path     string
	Override int
}

// Converter rewrites files on Fs. The zero value of Jobs means sequential.
type Converter struct {
	Fs       afero.Fs
	Sizes    tabsize.Lookup
	Override int
	Options  expand.Options
	DryRun   bool
	Jobs     int

	// OnSelect is called by ConvertDir with the selected files before any of
	// them is converted.
	OnSelect func(files []string)

	// OnResult is called once per file as soon as it is done. Calls are
	// serialized.
	OnResult func(Result)

	mu sync.Mutex
}

// New returns a Converter on the OS filesystem.
func New(sizes tabsize.Lookup) *Converter {
	return &Converter{Fs: afero.NewOsFs(), Sizes: sizes, Jobs: 1}
}

// CompilePattern compiles a shell-style glob. Wildcards match across path
// separators, so "*.sql" matches "a/b/report.sql".
func CompilePattern(pattern string) (glob.Glob, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Err: err}
	}
	return g, nil
}

// Select walks root and returns the regular files whose slash-separated path
// matches pattern, in walk order. An empty pattern matches every file.
func (c *Converter) Select(ctx context.Context, root, pattern string) ([]string, error) {
	var g glob.Glob
	if pattern != "" {
		var err error
		if g, err = CompilePattern(pattern); err != nil {
			return nil, err
		}
	}

	info, err := c.Fs.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", root, ErrNotDirectory)
	}

	logger := logging.FromContext(ctx)
	var files []string
	err = afero.Walk(c.Fs, root, func(path string, info os.FileInfo, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			logger.Debug("skipping unreadable entry", "path", path, "error", err)
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		if g != nil && !g.Match(matchPath(root, path)) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("selected files", "root", root, "pattern", pattern, "count", len(files))
	return files, nil
}

// matchPath is the string a pattern is matched against: path with the root
// spelled as given, so "./db/*.sql" matches below root "./db" even though the
// walk yields the cleaned "db/x.sql".
func matchPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	prefix := strings.TrimRight(root, string(filepath.Separator))
	return filepath.ToSlash(prefix + string(filepath.Separator) + rel)
}

// ConvertFile converts a single file. A missing file yields a skipped result
// wrapping fs.ErrNotExist.
func (c *Converter) ConvertFile(ctx context.Context, path string) Result {
	res := c.convertPath(ctx, path)
	c.emit(ctx, res)
	return res
}

// ConvertDir converts every file Select returns for root and pattern. Failures
// on individual files are recorded in the report and never stop the walk; the
// returned error is only set for an unusable root or pattern, or when ctx is
// cancelled.
func (c *Converter) ConvertDir(ctx context.Context, root, pattern string) (*Report, error) {
	files, err := c.Select(ctx, root, pattern)
	if err != nil {
		return nil, err
	}
	if c.OnSelect != nil {
		c.OnSelect(files)
	}

	report, err := c.Convert(ctx, files)
	if report != nil {
		report.Root = root
		report.Pattern = pattern
	}
	return report, err
}

// Convert converts files, at most Jobs at a time. Results keep the order of
// files.
func (c *Converter) Convert(ctx context.Context, files []string) (*Report, error) {
	report := &Report{
		DryRun:  c.DryRun,
		Results: make([]Result, len(files)),
	}

	var g errgroup.Group
	g.SetLimit(max(c.Jobs, 1))
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				report.Results[i] = Result{Path: path, Status: StatusFailed, Err: err}
			} else {
				report.Results[i] = c.convertPath(ctx, path)
			}
			c.emit(ctx, report.Results[i])
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}

func (c *Converter) convertPath(ctx context.Context, path string) Result {
	target, err := c.resolveLinks(path)
	if err != nil {
		return Result{Path: path, Status: StatusFailed, Err: err}
	}
	if target != path {
		logging.FromContext(ctx).Debug("following symlink", "path", path, "target", target)
	}

	info, err := c.Fs.Stat(target)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return Result{Path: path, Status: StatusSkipped, Err: err}
	case err != nil:
		return Result{Path: path, Status: StatusFailed, Err: fmt.Errorf("stat: %w", err)}
	case info.IsDir():
		return Result{Path: path, Status: StatusFailed, Err: ErrIsDirectory}
	}

	res := c.convert(ctx, Request{Path: target, Override: c.Override}, info.Mode().Perm())
	res.Path = path
	return res
}

// resolveLinks follows symlinks so a rewrite replaces the target file and
// leaves the link in place. Filesystems without Lstat and Readlink support
// return path unchanged.
func (c *Converter) resolveLinks(path string) (string, error) {
	lstater, ok := c.Fs.(afero.Lstater)
	if !ok {
		return path, nil
	}
	reader, ok := c.Fs.(afero.LinkReader)
	if !ok {
		return path, nil
	}

	for range maxLinks {
		info, lstatCalled, err := lstater.LstatIfPossible(path)
		if err != nil || !lstatCalled || info.Mode()&os.ModeSymlink == 0 {
			// Stat reports missing paths and dangling links.
			return path, nil
		}
		dest, err := reader.ReadlinkIfPossible(path)
		if err != nil {
			return "", fmt.Errorf("readlink: %w", err)
		}
		if !filepath.IsAbs(dest) {
			dest = filepath.Join(filepath.Dir(path), dest)
		}
		path = dest
	}
	return "", fmt.Errorf("%s: %w", path, ErrTooManyLinks)
}

func (c *Converter) convert(ctx context.Context, req Request, perm os.FileMode) Result {
	res := Result{Path: req.Path}

	data, err := afero.ReadFile(c.Fs, req.Path)
	if err != nil {
		res.Status = StatusFailed
		res.Err = fmt.Errorf("read: %w", err)
		return res
	}
	if bytes.IndexByte(data[:min(len(data), sniffLen)], 0) >= 0 {
		res.Status = StatusSkipped
		res.Err = ErrBinary
		return res
	}

	res.TabSize = tabsize.Resolve(req.Path, req.Override, c.Sizes)
	logging.FromContext(ctx).Debug("converting file", "path", req.Path, "tab_size", res.TabSize)

	content := string(data)
	if !expand.HasTabs(content) && !c.Options.TrimTrailing {
		res.Status = StatusUnchanged
		return res
	}
	out := expand.Text(content, res.TabSize, c.Options)
	if out == content {
		res.Status = StatusUnchanged
		return res
	}

	res.Status = StatusConverted
	res.Bytes = len(out)
	if c.DryRun {
		return res
	}
	if err := fsutil.WriteFileAtomic(c.Fs, req.Path, []byte(out), perm); err != nil {
		res.Status = StatusFailed
		res.Bytes = 0
		res.Err = err
	}
	return res
}

func (c *Converter) emit(ctx context.Context, res Result) {
	logger := logging.FromContext(ctx)
	if res.Err != nil {
		logger.Debug("file not converted", "path", res.Path, "status", res.Status, "error", res.Err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.OnResult != nil {
		c.OnResult(res)
	}
}

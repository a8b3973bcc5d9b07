package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/salmonumbrella/untabify/internal/fsutil"
	"github.com/salmonumbrella/untabify/internal/tabsize"
	"github.com/salmonumbrella/untabify/internal/validation"
	"github.com/spf13/afero"
)

// AppName names the directory under the user config dir.
const AppName = "untabify"

// FileName is the config file name inside the app directory.
const FileName = "config.json"

// PathEnv overrides the config file location.
const PathEnv = "UNTABIFY_CONFIG"

// ErrDefaultRequired is returned when removing the default width.
var ErrDefaultRequired = errors.New("the default tab size cannot be removed")

// TabConfig maps lower-case extensions (or "default") to tab widths.
type TabConfig struct {
	TabSizes map[string]int `json:"tab_sizes"`
}

// Defaults returns the built-in configuration.
func Defaults() *TabConfig {
	return &TabConfig{TabSizes: map[string]int{
		tabsize.DefaultKey: 4,
		"sql":              5,
		"xml":              2,
	}}
}

// TabSize implements tabsize.Lookup.
func (c *TabConfig) TabSize(key string) (int, bool) {
	if c == nil {
		return 0, false
	}
	v, ok := c.TabSizes[key]
	return v, ok
}

// Set stores size for ext. An empty ext sets the default width.
func (c *TabConfig) Set(ext string, size int) error {
	key, err := NormalizeExtension(ext)
	if err != nil {
		return err
	}
	if err := validation.TabSize("tab size", size); err != nil {
		return err
	}
	if c.TabSizes == nil {
		c.TabSizes = make(map[string]int)
	}
	c.TabSizes[key] = size
	return nil
}

// Unset removes ext. It reports whether an entry was removed.
func (c *TabConfig) Unset(ext string) (bool, error) {
	key, err := NormalizeExtension(ext)
	if err != nil {
		return false, err
	}
	if key == tabsize.DefaultKey {
		return false, ErrDefaultRequired
	}
	if _, ok := c.TabSizes[key]; !ok {
		return false, nil
	}
	delete(c.TabSizes, key)
	return true, nil
}

// Entry is one configured width, for display.
type Entry struct {
	Extension string `json:"extension"`
	TabSize   int    `json:"tabSize"`
}

// Entries lists the configuration with the default first and the rest sorted.
func (c *TabConfig) Entries() []Entry {
	keys := make([]string, 0, len(c.TabSizes))
	for k := range c.TabSizes {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i] == tabsize.DefaultKey || keys[j] == tabsize.DefaultKey {
			return keys[i] == tabsize.DefaultKey
		}
		return keys[i] < keys[j]
	})

	out := make([]Entry, 0, len(keys))
	for _, k := range keys {
		out = append(out, Entry{Extension: k, TabSize: c.TabSizes[k]})
	}
	return out
}

func (c *TabConfig) validate() error {
	if c.TabSizes == nil {
		return errors.New("missing tab_sizes")
	}
	for k, v := range c.TabSizes {
		if err := validation.TabSize(fmt.Sprintf("tab size for %q", k), v); err != nil {
			return err
		}
	}
	return nil
}

// NormalizeExtension lower-cases ext and strips a leading dot. Empty input
// maps to the default key.
func NormalizeExtension(ext string) (string, error) {
	ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	if ext == "" {
		return tabsize.DefaultKey, nil
	}
	if err := validation.Extension(ext); err != nil {
		return "", err
	}
	return ext, nil
}

// CorruptError reports a config file that exists but cannot be used.
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("config file %s is invalid: %v", e.Path, e.Err)
}

func (e *CorruptError) Unwrap() error {
	return e.Err
}

// DefaultPath returns the config file location, honouring UNTABIFY_CONFIG.
func DefaultPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(PathEnv)); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, AppName, FileName), nil
}

// Store persists a TabConfig as JSON.
type Store struct {
	Fs   afero.Fs
	Path string
}

// NewStore returns a Store on the OS filesystem.
func NewStore(path string) *Store {
	return &Store{Fs: afero.NewOsFs(), Path: path}
}

// Load reads the config, writing the defaults first if the file is missing.
func (s *Store) Load() (*TabConfig, error) {
	if err := s.Fs.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}

	data, err := afero.ReadFile(s.Fs, s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := Defaults()
			if err := s.Save(cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg TabConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &CorruptError{Path: s.Path, Err: err}
	}
	if err := cfg.validate(); err != nil {
		return nil, &CorruptError{Path: s.Path, Err: err}
	}
	return &cfg, nil
}

// Save writes cfg as indented JSON, replacing the file atomically.
func (s *Store) Save(cfg *TabConfig) error {
	if err := s.Fs.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := fsutil.WriteFileAtomic(s.Fs, s.Path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Reset saves and returns the built-in defaults.
func (s *Store) Reset() (*TabConfig, error) {
	cfg := Defaults()
	if err := s.Save(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

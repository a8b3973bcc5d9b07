// Package tabsize decides which tab width applies to a file.
package tabsize

import (
	"path/filepath"
	"strings"
)

const (
	// DefaultKey is the configuration key used when a file has no extension
	// or its extension is not configured.
	DefaultKey = "default"

	// Fallback is used when not even DefaultKey is configured.
	Fallback = 4
)

// Lookup returns the configured width for an extension key.
type Lookup interface {
	TabSize(key string) (int, bool)
}

// Map adapts a plain map to Lookup.
type Map map[string]int

func (m Map) TabSize(key string) (int, bool) {
	v, ok := m[key]
	return v, ok
}

// Resolve returns the effective tab width for path. A positive override wins
// over everything else.
func Resolve(path string, override int, sizes Lookup) int {
	if override >= 1 {
		return override
	}
	if sizes == nil {
		return Fallback
	}
	if v, ok := sizes.TabSize(ExtensionKey(path)); ok && v >= 1 {
		return v
	}
	if v, ok := sizes.TabSize(DefaultKey); ok && v >= 1 {
		return v
	}
	return Fallback
}

// ExtensionKey returns the lower-cased text after the last dot of the base
// name, or DefaultKey when there is none. Dotfiles such as ".bashrc" have no
// extension.
func ExtensionKey(path string) string {
	base := filepath.Base(path)
	i := strings.LastIndexByte(base, '.')
	if i <= 0 || i == len(base)-1 {
		return DefaultKey
	}
	return strings.ToLower(base[i+1:])
}

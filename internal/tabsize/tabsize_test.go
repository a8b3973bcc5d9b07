package tabsize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	sizes := Map{"default": 4, "sql": 5, "xml": 2, "py": 8}

	tests := []struct {
		name     string
		path     string
		override int
		sizes    Lookup
		want     int
	}{
		{name: "override wins over extension", path: "q.sql", override: 3, sizes: sizes, want: 3},
		{name: "override wins without extension", path: "Makefile", override: 7, sizes: sizes, want: 7},
		{name: "configured extension", path: "q.sql", sizes: sizes, want: 5},
		{name: "case insensitive extension", path: "dir/foo.PY", sizes: sizes, want: 8},
		{name: "unknown extension uses default", path: "main.go", sizes: sizes, want: 4},
		{name: "no extension uses default", path: "Makefile", sizes: Map{"default": 6}, want: 6},
		{name: "missing default uses fallback", path: "main.go", sizes: Map{"sql": 5}, want: Fallback},
		{name: "nil lookup uses fallback", path: "a.sql", sizes: nil, want: Fallback},
		{name: "invalid stored width ignored", path: "a.sql", sizes: Map{"sql": 0, "default": 2}, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Resolve(tt.path, tt.override, tt.sizes))
		})
	}
}

func TestExtensionKey(t *testing.T) {
	tests := map[string]string{
		"report.sql":         "sql",
		"a/b/report.SQL":     "sql",
		"archive.tar.gz":     "gz",
		"Makefile":           DefaultKey,
		".bashrc":            DefaultKey,
		"trailing.":          DefaultKey,
		"dir.d/file":         DefaultKey,
		"/abs/path/page.XML": "xml",
	}
	for in, want := range tests {
		require.Equal(t, want, ExtensionKey(in), in)
	}
}

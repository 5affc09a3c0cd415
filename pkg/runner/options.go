// Package runner parses many Markdown files concurrently. Every file gets
// its own tokenizers; results come back in input order.
package runner

import (
	"io"

	"github.com/yaklabco/gomdmark/pkg/cache"
)

// Options selects the files of a run and how they are parsed.
type Options struct {
	// Paths lists files, directories and "-" for stdin. Empty means ".".
	Paths []string

	// WorkingDir resolves relative paths and glob patterns. Empty means
	// the process working directory.
	WorkingDir string

	// Extensions are the lowercase suffixes, dot included, that mark a
	// file as Markdown during directory walks. Empty means
	// DefaultExtensions.
	Extensions []string

	IncludeGlobs   []string
	ExcludeGlobs   []string
	FollowSymlinks bool

	// Workers bounds concurrent parses; zero or less uses GOMAXPROCS.
	Workers int

	Stdin io.Reader

	// Cache is optional. Fingerprint identifies the grammar settings and
	// is folded into every cache key.
	Cache       *cache.Cache
	Fingerprint string
}

// DefaultExtensions returns the Markdown suffixes recognized by default.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) effectiveExtensions() []string {
	return orDefault(o.Extensions, DefaultExtensions())
}

func (o Options) effectivePaths() []string {
	return orDefault(o.Paths, []string{"."})
}

func orDefault(values, fallback []string) []string {
	if len(values) == 0 {
		return fallback
	}
	return values
}

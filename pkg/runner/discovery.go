package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/gomdmark/pkg/fsutil"
)

// pattern is a compiled include or exclude glob. Patterns without a slash
// also match the base name, so "*.draft.md" works at any depth.
type pattern struct {
	glob     glob.Glob
	baseName bool
}

func compilePatterns(patterns []string) ([]pattern, error) {
	compiled := make([]pattern, 0, len(patterns))
	for _, p := range patterns {
		p = filepath.ToSlash(p)
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q: %w", p, err)
		}
		compiled = append(compiled, pattern{glob: g, baseName: !strings.Contains(p, "/")})
	}
	return compiled, nil
}

// match reports whether rel, a slash-separated path relative to the
// working directory, matches. A leading "**/" also matches at the top.
func (p pattern) match(rel string) bool {
	if p.glob.Match(rel) || p.glob.Match("/"+rel) {
		return true
	}
	return p.baseName && p.glob.Match(pathBase(rel))
}

func pathBase(rel string) string {
	if i := strings.LastIndexByte(rel, '/'); i >= 0 {
		return rel[i+1:]
	}
	return rel
}

func matchAny(patterns []pattern, rel string) bool {
	return slices.ContainsFunc(patterns, func(p pattern) bool { return p.match(rel) })
}

// discoverer carries the state of one Discover call.
type discoverer struct {
	workDir    string
	extensions []string
	include    []pattern
	exclude    []pattern
	follow     bool
	seen       map[string]bool
	walked     map[string]bool
	files      []string
}

// Discover finds Markdown files under opts.Paths. Files come back in the
// order of the arguments; files found inside a directory are in lexical
// order. Duplicates are dropped. The path "-" (stdin) is passed through.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	d := &discoverer{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		follow:     opts.FollowSymlinks,
		seen:       make(map[string]bool),
		walked:     make(map[string]bool),
	}
	if d.include, err = compilePatterns(opts.IncludeGlobs); err != nil {
		return nil, err
	}
	if d.exclude, err = compilePatterns(opts.ExcludeGlobs); err != nil {
		return nil, err
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		if inputPath == fsutil.StdinPath {
			d.add(inputPath)
			continue
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if info.IsDir() {
			if err := d.walk(ctx, absPath); err != nil {
				return nil, err
			}
			continue
		}

		// Files named explicitly only need the right extension.
		if d.hasExtension(absPath) {
			d.add(absPath)
		}
	}

	return d.files, nil
}

func (d *discoverer) add(path string) {
	if !d.seen[path] {
		d.seen[path] = true
		d.files = append(d.files, path)
	}
}

// rel returns path relative to the working directory with forward slashes.
func (d *discoverer) rel(path string) string {
	rel, err := filepath.Rel(d.workDir, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

func (d *discoverer) hasExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.ContainsFunc(d.extensions, func(e string) bool {
		return strings.ToLower(e) == ext
	})
}

func (d *discoverer) wanted(path string) bool {
	if !d.hasExtension(path) {
		return false
	}
	rel := d.rel(path)
	if matchAny(d.exclude, rel) {
		return false
	}
	return len(d.include) == 0 || matchAny(d.include, rel)
}

// walk adds the Markdown files under root, skipping hidden entries and
// excluded directories.
func (d *discoverer) walk(ctx context.Context, root string) error {
	if realRoot, err := filepath.EvalSymlinks(root); err == nil {
		d.walked[realRoot] = true
	}
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden {
				return filepath.SkipDir
			}
			if path != root {
				rel := d.rel(path)
				if matchAny(d.exclude, rel) || matchAny(d.exclude, rel+"/") {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := os.Stat(path)
			if err != nil {
				// Broken or inaccessible symlink.
				return nil //nolint:nilerr // Skip silently.
			}
			if target.IsDir() {
				if !d.follow {
					return nil
				}
				realPath, err := filepath.EvalSymlinks(path)
				if err != nil || d.walked[realPath] {
					return nil //nolint:nilerr // Skip silently; cycles end here.
				}
				// WalkDir does not descend into symlinks; walk the target.
				return d.walk(ctx, realPath)
			}
		}

		if d.wanted(path) {
			d.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

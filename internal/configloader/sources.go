package configloader

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
)

const appName = "gomdmark"

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	// projectFileNames are tried in order in each directory.
	projectFileNames = []string{
		".gomdmark.yml",
		".gomdmark.yaml",
		"gomdmark.yml",
		"gomdmark.yaml",
		".gomdmark.json",
	}

	// globalFileNames are tried in the system and user directories.
	globalFileNames = []string{"config.yaml", "config.yml"}

	// repoMarkers end the upward project search.
	repoMarkers = []string{".git", ".hg", ".svn"}
)

// Sources holds the configuration files Load reads, lowest precedence
// first. A field is empty when no such file exists.
type Sources struct {
	System   string
	User     string
	Project  string
	Explicit string
}

// discover fills in the system, user and project files for workDir.
func discover(ctx context.Context, workDir string) (*Sources, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &Sources{
		System:  firstFile(systemConfigDir(), globalFileNames),
		User:    firstFile(UserConfigDir(), globalFileNames),
		Project: project,
	}, nil
}

// FindProjectConfig walks from startDir toward the filesystem root and
// returns the first project config file. The walk ends without a result
// at a repository root or the home directory.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if path := firstFile(dir, projectFileNames); path != "" {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir || dir == home || isRepoRoot(dir) {
			return "", nil
		}
		dir = parent
	}
}

// UserConfigDir is $XDG_CONFIG_HOME/gomdmark or ~/.config/gomdmark, or ""
// without a home directory.
func UserConfigDir() string {
	base := xdgHome("XDG_CONFIG_HOME", ".config")
	if base == "" {
		return ""
	}
	return filepath.Join(base, appName)
}

// DefaultCachePath is the parse cache location under $XDG_CACHE_HOME or
// ~/.cache, or "" without a home directory.
func DefaultCachePath() string {
	base := xdgHome("XDG_CACHE_HOME", ".cache")
	if base == "" {
		return ""
	}
	return filepath.Join(base, appName, "cache.db")
}

func xdgHome(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, fallback)
}

func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return filepath.Join("/etc", appName)
	}
	programData := os.Getenv("ProgramData")
	if programData == "" {
		programData = `C:\ProgramData`
	}
	return filepath.Join(programData, appName)
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(dir string, names []string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		if path := filepath.Join(dir, name); isFile(path) {
			return path
		}
	}
	return ""
}

func isRepoRoot(dir string) bool {
	for _, marker := range repoMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

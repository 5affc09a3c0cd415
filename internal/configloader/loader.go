// Package configloader resolves the gomdmark configuration from defaults,
// system, user and project files, the environment and command line flags.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/gomdmark/pkg/config"
	"github.com/yaklabco/gomdmark/pkg/fsutil"
)

// LoadOptions controls which sources Load reads.
type LoadOptions struct {
	// WorkingDir starts the project config search. Defaults to the
	// current directory.
	WorkingDir string

	// ExplicitPath replaces the project config search (--config).
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// LookupEnv reads environment variables. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)

	// CLIConfig holds flag values. Set fields win over every other source.
	CLIConfig *config.Config
}

// LoadResult is the resolved configuration and where it came from.
type LoadResult struct {
	Config  *config.Config
	Sources *Sources

	// LoadedFrom lists the files read, lowest precedence first.
	LoadedFrom []string

	// Warnings are validation findings that did not stop the load.
	Warnings []string
}

// Load layers every configuration source over the defaults, from lowest
// to highest precedence: system file, user file, project file (or the
// explicit file), GOMDMARK_* variables, then flags. Construct aliases and
// groups under disable are expanded before validation.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	sources, err := discover(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover config files: %w", err)
	}
	sources.Explicit = opts.ExplicitPath

	files := []struct {
		layer string
		path  string
		skip  bool
	}{
		{"system", sources.System, opts.IgnoreSystemConfig},
		{"user", sources.User, opts.IgnoreUserConfig},
		{"project", sources.Project, opts.IgnoreProjectConfig || sources.Explicit != ""},
		{"explicit", sources.Explicit, false},
	}

	result := &LoadResult{Sources: sources}
	cfg := config.NewConfig()
	for _, f := range files {
		if f.skip || f.path == "" {
			continue
		}
		layer, err := readConfigFile(f.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", f.layer, err)
		}
		if report := Validate(layer).InFile(f.path); !report.Valid() {
			return nil, report.Err()
		}
		cfg = overlay(cfg, layer)
		result.LoadedFrom = append(result.LoadedFrom, f.path)
	}

	if !opts.IgnoreEnv {
		lookup := opts.LookupEnv
		if lookup == nil {
			lookup = os.LookupEnv
		}
		if err := applyEnv(cfg, lookup); err != nil {
			return nil, fmt.Errorf("environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = overlay(cfg, opts.CLIConfig)
		cfg.Positions = opts.CLIConfig.Positions
	}
	cfg.Disable = expandConstructNames(cfg.Disable)

	report := Validate(cfg)
	if !report.Valid() {
		return nil, report.Err()
	}
	for i := range report.Warnings {
		result.Warnings = append(result.Warnings, report.Warnings[i].Error())
	}

	result.Config = cfg
	return result, nil
}

// readConfigFile parses one YAML or JSON config file.
func readConfigFile(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := config.FromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Disable = expandConstructNames(cfg.Disable)
	return cfg, nil
}

// WriteConfig saves cfg as YAML under the standard header. An existing
// file is only replaced when force is set.
func WriteConfig(ctx context.Context, cfg *config.Config, path string, force bool) error {
	if !force && isFile(path) {
		return fmt.Errorf("%s already exists", path)
	}

	data, err := cfg.ToYAMLWithHeader(config.DefaultTemplateHeader())
	if err != nil {
		return err
	}
	return fsutil.WriteAtomic(ctx, path, data, fsutil.DefaultFileMode)
}

package configloader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdmark/pkg/config"
)

const envPrefix = "GOMDMARK_"

// EnvVar is an environment variable that overrides a config field.
type EnvVar struct {
	// Name is the full variable name, such as GOMDMARK_FORMAT.
	Name string
	// Field is the config file key it overrides.
	Field string
	Help  string

	set func(cfg *config.Config, value string) error
}

//nolint:gochecknoglobals // Read-only lookup table.
var envVars = []EnvVar{
	{
		Name: envPrefix + "FORMAT", Field: "format",
		Help: "Output format: pretty, json, yaml, or summary",
		set: scalar(func(cfg *config.Config, v string) error {
			cfg.Format = config.OutputFormat(strings.ToLower(v))
			return nil
		}),
	},
	{
		Name: envPrefix + "CACHE", Field: "cache",
		Help: "Path of the parse cache database",
		set: scalar(func(cfg *config.Config, v string) error {
			cfg.Cache = v
			return nil
		}),
	},
	{
		Name: envPrefix + "WORKERS", Field: "workers",
		Help: "Number of parallel workers (0 = auto)",
		set: scalar(func(cfg *config.Config, v string) error {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("not an integer: %q", v)
			}
			cfg.Workers = n
			return nil
		}),
	},
	{
		Name: envPrefix + "EXTENSIONS", Field: "extensions",
		Help: "Comma-separated inline marks",
		set:  list(func(cfg *config.Config) *[]string { return &cfg.Extensions }),
	},
	{
		Name: envPrefix + "DISABLE", Field: "disable",
		Help: "Comma-separated constructs, aliases or groups to turn off",
		set:  list(func(cfg *config.Config) *[]string { return &cfg.Disable }),
	},
	{
		Name: envPrefix + "TRANSFORMS", Field: "transforms",
		Help: "Comma-separated tree transforms",
		set:  list(func(cfg *config.Config) *[]string { return &cfg.Transforms }),
	},
	{
		Name: envPrefix + "IGNORE", Field: "ignore",
		Help: "Comma-separated ignore globs",
		set:  list(func(cfg *config.Config) *[]string { return &cfg.Ignore }),
	},
}

// scalar skips empty values so an exported but blank variable changes nothing.
func scalar(set func(*config.Config, string) error) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		if value == "" {
			return nil
		}
		return set(cfg, value)
	}
}

// list splits on commas. A blank value yields an empty, non-nil list,
// which clears the field.
func list(field func(*config.Config) *[]string) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		items := []string{}
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		*field(cfg) = items
		return nil
	}
}

// EnvVars returns the supported environment variables.
func EnvVars() []EnvVar {
	return append([]EnvVar(nil), envVars...)
}

// EnvVarFor returns the variable that overrides a config key, or "".
func EnvVarFor(field string) string {
	for _, v := range envVars {
		if v.Field == field {
			return v.Name
		}
	}
	return ""
}

// applyEnv overrides cfg with the variables lookup reports as set.
func applyEnv(cfg *config.Config, lookup func(string) (string, bool)) error {
	for _, v := range envVars {
		value, ok := lookup(v.Name)
		if !ok {
			continue
		}
		if err := v.set(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", v.Name, err)
		}
	}
	return nil
}

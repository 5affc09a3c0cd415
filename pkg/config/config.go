// Package config defines core configuration types for gomdmark.
// These types are pure data structures; discovery and layering live in
// internal/configloader.
package config

import (
	"errors"
	"fmt"
	"slices"
)

// Names of the inline mark extensions.
const (
	ExtensionUnderline     = "underline"
	ExtensionStrikethrough = "strikethrough"
	ExtensionSpoiler       = "spoiler"
)

// TransformLangDetect names the code language detection transform.
const TransformLangDetect = "langdetect"

var (
	// ErrUnknownExtension is returned for an extension name that is not built in.
	ErrUnknownExtension = errors.New("unknown extension")

	// ErrUnknownFormat is returned for an unsupported output format.
	ErrUnknownFormat = errors.New("unknown format")

	// ErrUnknownTransform is returned for a transform name that is not built in.
	ErrUnknownTransform = errors.New("unknown transform")
)

// KnownExtensions returns the built-in mark extension names in their
// default order.
func KnownExtensions() []string {
	return []string{ExtensionUnderline, ExtensionStrikethrough, ExtensionSpoiler}
}

// KnownTransforms returns the built-in transform names.
func KnownTransforms() []string {
	return []string{TransformLangDetect}
}

// Config is the root configuration structure for gomdmark.
type Config struct {
	// Extensions lists the inline marks to enable. A nil list means the
	// defaults; an empty list means plain CommonMark.
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`

	// Disable lists construct names to turn off, such as "codeIndented".
	Disable []string `mapstructure:"disable" yaml:"disable,omitempty"`

	// Transforms lists tree transforms to run after compiling.
	Transforms []string `mapstructure:"transforms" yaml:"transforms,omitempty"`

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"format" yaml:"format"`

	// Workers is the number of files parsed in parallel (0 = GOMAXPROCS).
	Workers int `mapstructure:"workers" yaml:"workers"`

	// Cache is the path of the parse cache database. Empty disables it.
	Cache string `mapstructure:"cache" yaml:"cache,omitempty"`

	// Ignore contains glob patterns for files to skip during discovery.
	Ignore []string `mapstructure:"ignore" yaml:"ignore,omitempty"`

	// CLI-level options (not persisted to config files).

	// Positions includes node positions in tree output.
	Positions bool `mapstructure:"-" yaml:"-"`

	// Output is a file to write results to instead of stdout.
	Output string `mapstructure:"-" yaml:"-"`

	// Color controls styled output.
	Color ColorMode `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Extensions: KnownExtensions(),
		Format:     FormatPretty,
		Workers:    0, // 0 means use GOMAXPROCS
		Positions:  true,
		Color:      ColorAuto,
	}
}

// Validate reports unknown extension, transform and format names.
// Construct names in Disable are checked by the loader, which knows the
// grammar.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}

	var errs []error
	for _, name := range c.Extensions {
		if !slices.Contains(KnownExtensions(), name) {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownExtension, name))
		}
	}
	for _, name := range c.Transforms {
		if !slices.Contains(KnownTransforms(), name) {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownTransform, name))
		}
	}
	if c.Format != "" && !c.Format.IsValid() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownFormat, c.Format))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	return errors.Join(errs...)
}

package configloader

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/gomdmark/pkg/config"
	"github.com/yaklabco/gomdmark/pkg/micromark"
)

// Problem is one finding about a configuration value.
type Problem struct {
	// Field locates the value, such as "extensions[1]".
	Field   string
	Value   any
	Message string
	// File is the config file the value came from, when known.
	File string
	// Err is the sentinel the problem matches with errors.Is.
	Err error
}

func (p *Problem) Error() string {
	var b strings.Builder
	for _, part := range []string{p.File, p.Field} {
		if part != "" {
			b.WriteString(part)
			b.WriteString(": ")
		}
	}
	b.WriteString(p.Message)
	return b.String()
}

func (p *Problem) Unwrap() error { return p.Err }

// Report collects the problems found by Validate. Errors stop a load;
// warnings are passed on to the user.
type Report struct {
	Errors   []Problem
	Warnings []Problem
}

// Valid reports whether there are no errors.
func (r *Report) Valid() bool { return len(r.Errors) == 0 }

// Err joins the errors, or returns nil.
func (r *Report) Err() error {
	errs := make([]error, len(r.Errors))
	for i := range r.Errors {
		errs[i] = &r.Errors[i]
	}
	return errors.Join(errs...)
}

// InFile records file as the source of every problem.
func (r *Report) InFile(file string) *Report {
	for i := range r.Errors {
		r.Errors[i].File = file
	}
	for i := range r.Warnings {
		r.Warnings[i].File = file
	}
	return r
}

func (r *Report) fail(sentinel error, field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, Problem{Field: field, Value: value, Message: fmt.Sprintf(format, args...), Err: sentinel})
}

func (r *Report) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, Problem{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks cfg. Unknown extensions, transforms and formats are
// errors; unknown construct names under disable are only warnings since
// disabling a missing construct does nothing.
func Validate(cfg *config.Config) *Report {
	r := &Report{}
	if cfg == nil {
		return r
	}

	checkNames(r, "extensions", cfg.Extensions, config.KnownExtensions(), config.ErrUnknownExtension)
	checkNames(r, "transforms", cfg.Transforms, config.KnownTransforms(), config.ErrUnknownTransform)

	if cfg.Format != "" && !cfg.Format.IsValid() {
		r.fail(config.ErrUnknownFormat, "format", cfg.Format,
			"invalid format %q; must be one of: pretty, json, yaml, summary", cfg.Format)
	}
	if cfg.Workers < 0 {
		r.fail(nil, "workers", cfg.Workers, "workers must be >= 0 (0 means auto)")
	}
	if cfg.Color != "" && !cfg.Color.IsValid() {
		r.fail(nil, "color", cfg.Color, "invalid color mode %q; must be one of: auto, always, never", cfg.Color)
	}

	constructs := micromark.ConstructNames(micromark.Underline(), micromark.Strikethrough(), micromark.Spoiler())
	for i, name := range cfg.Disable {
		if !slices.Contains(constructs, name) {
			r.warn(fmt.Sprintf("disable[%d]", i), name, "unknown construct %q; it will be ignored", name)
		}
	}

	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			r.fail(nil, fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern %q: %v", pattern, err)
		}
	}

	return r
}

func checkNames(r *Report, key string, names, known []string, sentinel error) {
	for i, name := range names {
		if !slices.Contains(known, name) {
			r.fail(sentinel, fmt.Sprintf("%s[%d]", key, i), name,
				"%s %q; must be one of: %s", sentinel, name, strings.Join(known, ", "))
		}
	}
}

package markdown

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/gomdmark/pkg/compiler"
	"github.com/yaklabco/gomdmark/pkg/config"
	"github.com/yaklabco/gomdmark/pkg/langdetect"
	"github.com/yaklabco/gomdmark/pkg/micromark"
)

// Option configures a Parser.
type Option func(*options)

type options struct {
	marks              []micromark.Extension
	marksSet           bool
	syntax             []micromark.Extension
	disable            []string
	compilerExtensions []compiler.Extension
	transforms         []compiler.Transform
	onExitError        compiler.OnExitError
	logger             *log.Logger
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if !o.marksSet {
		o.marks = []micromark.Extension{micromark.Underline(), micromark.Strikethrough(), micromark.Spoiler()}
	}
	return o
}

func (o *options) extensions() []micromark.Extension {
	exts := append([]micromark.Extension(nil), o.marks...)
	exts = append(exts, o.syntax...)
	if len(o.disable) > 0 {
		exts = append(exts, micromark.Extension{Disable: o.disable})
	}
	return exts
}

// WithMarks replaces the default inline marks. Pass no extensions for
// plain CommonMark.
func WithMarks(marks ...micromark.Extension) Option {
	return func(o *options) {
		o.marks = marks
		o.marksSet = true
	}
}

// WithSyntax adds construct extensions after the marks.
func WithSyntax(exts ...micromark.Extension) Option {
	return func(o *options) {
		o.syntax = append(o.syntax, exts...)
	}
}

// WithDisabled turns off constructs by name, such as "codeIndented".
func WithDisabled(names ...string) Option {
	return func(o *options) {
		o.disable = append(o.disable, names...)
	}
}

// WithCompilerExtensions adds compiler handlers for custom tokens.
func WithCompilerExtensions(exts ...compiler.Extension) Option {
	return func(o *options) {
		o.compilerExtensions = append(o.compilerExtensions, exts...)
	}
}

// WithTransforms adds tree transforms, run in order after compiling.
func WithTransforms(transforms ...compiler.Transform) Option {
	return func(o *options) {
		o.transforms = append(o.transforms, transforms...)
	}
}

// WithOnExitError handles mismatched exits in the compiler instead of
// failing the parse.
func WithOnExitError(fn compiler.OnExitError) Option {
	return func(o *options) {
		o.onExitError = fn
	}
}

// WithLogger traces the engine at debug level.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// MarkExtension returns the construct extension for a mark name.
func MarkExtension(name string) (micromark.Extension, error) {
	switch name {
	case config.ExtensionUnderline:
		return micromark.Underline(), nil
	case config.ExtensionStrikethrough:
		return micromark.Strikethrough(), nil
	case config.ExtensionSpoiler:
		return micromark.Spoiler(), nil
	default:
		return micromark.Extension{}, fmt.Errorf("%w: %q", config.ErrUnknownExtension, name)
	}
}

// TransformByName returns a built-in tree transform.
func TransformByName(name string) (compiler.Transform, error) {
	switch name {
	case config.TransformLangDetect:
		return langdetect.Transform, nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownTransform, name)
	}
}

// FromConfig translates a configuration into parser options.
func FromConfig(cfg *config.Config) ([]Option, error) {
	marks := make([]micromark.Extension, 0, len(cfg.Extensions))
	for _, name := range cfg.Extensions {
		ext, err := MarkExtension(name)
		if err != nil {
			return nil, err
		}
		marks = append(marks, ext)
	}

	opts := []Option{WithMarks(marks...)}
	if len(cfg.Disable) > 0 {
		opts = append(opts, WithDisabled(cfg.Disable...))
	}
	for _, name := range cfg.Transforms {
		transform, err := TransformByName(name)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithTransforms(transform))
	}
	return opts, nil
}

package configloader

import "github.com/yaklabco/gomdmark/pkg/config"

// overlay returns base with every field set in top applied over it.
// A zero scalar or a nil list in top means unset. An empty, non-nil list
// is set, so "extensions: []" turns every mark off.
func overlay(base, top *config.Config) *config.Config {
	switch {
	case base == nil:
		return top
	case top == nil:
		return base
	}

	out := *base
	setIf(&out.Format, top.Format)
	setIf(&out.Workers, top.Workers)
	setIf(&out.Cache, top.Cache)
	setIf(&out.Output, top.Output)
	setIf(&out.Color, top.Color)
	setListIf(&out.Extensions, top.Extensions)
	setListIf(&out.Disable, top.Disable)
	setListIf(&out.Transforms, top.Transforms)
	setListIf(&out.Ignore, top.Ignore)
	return &out
}

func setIf[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}

func setListIf(dst *[]string, v []string) {
	if v != nil {
		*dst = v
	}
}

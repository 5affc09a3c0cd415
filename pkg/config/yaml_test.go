package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdmark/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("empty config", func(t *testing.T) {
		t.Parallel()
		c := &config.Config{}
		clone := c.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, c, clone)
		assert.Nil(t, clone.Extensions)
	})

	t.Run("deep copies slices", func(t *testing.T) {
		t.Parallel()
		original := &config.Config{
			Extensions: []string{"underline"},
			Disable:    []string{"codeIndented"},
			Transforms: []string{"langdetect"},
			Ignore:     []string{"vendor/**"},
		}

		clone := original.Clone()
		clone.Extensions[0] = "spoiler"
		clone.Disable[0] = "htmlFlow"
		clone.Transforms[0] = "changed"
		clone.Ignore[0] = "changed"

		assert.Equal(t, "underline", original.Extensions[0])
		assert.Equal(t, "codeIndented", original.Disable[0])
		assert.Equal(t, "langdetect", original.Transforms[0])
		assert.Equal(t, "vendor/**", original.Ignore[0])
	})

	t.Run("keeps empty extension list", func(t *testing.T) {
		t.Parallel()
		original := &config.Config{Extensions: []string{}}
		clone := original.Clone()
		require.NotNil(t, clone.Extensions)
		assert.Empty(t, clone.Extensions)
	})

	t.Run("preserves CLI-only fields", func(t *testing.T) {
		t.Parallel()
		original := config.NewConfig()
		original.Output = "out.json"
		original.Color = config.ColorNever
		original.Positions = false

		clone := original.Clone()
		assert.Equal(t, original, clone)
	})
}

func TestToYAML(t *testing.T) {
	t.Parallel()

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()
		var c *config.Config
		data, err := c.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("omits CLI-only fields", func(t *testing.T) {
		t.Parallel()
		c := config.NewConfig()
		c.Output = "secret.json"

		data, err := c.ToYAML()
		require.NoError(t, err)
		assert.Contains(t, string(data), "extensions:")
		assert.Contains(t, string(data), "format: pretty")
		assert.NotContains(t, string(data), "secret.json")
	})

	t.Run("with header", func(t *testing.T) {
		t.Parallel()
		data, err := config.NewConfig().ToYAMLWithHeader("# header")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "# header\n\n"))
	})
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		original := config.NewConfig()
		original.Disable = []string{"codeIndented", "htmlFlow"}
		original.Transforms = []string{config.TransformLangDetect}
		original.Workers = 4
		original.Cache = "/tmp/gomdmark.db"

		data, err := original.ToYAML()
		require.NoError(t, err)

		parsed, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, original.Extensions, parsed.Extensions)
		assert.Equal(t, original.Disable, parsed.Disable)
		assert.Equal(t, original.Transforms, parsed.Transforms)
		assert.Equal(t, original.Format, parsed.Format)
		assert.Equal(t, 4, parsed.Workers)
		assert.Equal(t, "/tmp/gomdmark.db", parsed.Cache)
	})

	t.Run("missing fields stay unset", func(t *testing.T) {
		t.Parallel()
		parsed, err := config.FromYAML([]byte("workers: 2\n"))
		require.NoError(t, err)
		assert.Nil(t, parsed.Extensions)
		assert.Equal(t, config.OutputFormat(""), parsed.Format)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()
		_, err := config.FromYAML([]byte("extensions: [underline"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse yaml")
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()
		_, err := config.FromYAML([]byte("format: json\nrules: {}\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rules")
	})

	t.Run("comments only", func(t *testing.T) {
		t.Parallel()
		parsed, err := config.FromYAML([]byte("# nothing set yet\n"))
		require.NoError(t, err)
		assert.Equal(t, &config.Config{}, parsed)
	})

	t.Run("json file", func(t *testing.T) {
		t.Parallel()
		parsed, err := config.FromYAML([]byte(`{"extensions": ["spoiler"], "workers": 2}`))
		require.NoError(t, err)
		assert.Equal(t, []string{"spoiler"}, parsed.Extensions)
		assert.Equal(t, 2, parsed.Workers)
	})
}

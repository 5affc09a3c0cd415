package configloader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdmark/pkg/config"
)

// filesOnly keeps machine-wide files and the environment out of a load.
func filesOnly(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeConfig(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_DefaultsWithoutFiles(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), filesOnly(t.TempDir()))
	require.NoError(t, err)

	assert.Equal(t, config.KnownExtensions(), result.Config.Extensions)
	assert.Equal(t, config.FormatPretty, result.Config.Format)
	assert.Empty(t, result.LoadedFrom)
	assert.Empty(t, result.Warnings)
}

func TestLoad_ProjectFileFoundFromSubdirectory(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := writeConfig(t, root, ".gomdmark.yml", "extensions: []\nformat: json\nworkers: 3\ndisable: [indented-code]\n")
	docs := filepath.Join(root, "docs", "guide")
	require.NoError(t, os.MkdirAll(docs, 0o755))

	result, err := Load(context.Background(), filesOnly(docs))
	require.NoError(t, err)

	cfg := result.Config
	assert.NotNil(t, cfg.Extensions)
	assert.Empty(t, cfg.Extensions, "an empty list turns the marks off")
	assert.Equal(t, config.FormatJSON, cfg.Format)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, []string{"codeIndented"}, cfg.Disable)
	assert.Equal(t, []string{path}, result.LoadedFrom)
	assert.Equal(t, path, result.Sources.Project)
}

func TestLoad_SearchStopsAtRepositoryRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeConfig(t, outer, ".gomdmark.yml", "format: json\n")
	repo := filepath.Join(outer, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

	result, err := Load(context.Background(), filesOnly(repo))
	require.NoError(t, err)
	assert.Equal(t, config.FormatPretty, result.Config.Format)
	assert.Empty(t, result.Sources.Project)
}

func TestLoad_ExplicitFileReplacesProjectFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, ".gomdmark.yml", "format: json\n")
	explicit := writeConfig(t, dir, "ci/gomdmark.json", `{"format": "yaml"}`)

	opts := filesOnly(dir)
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, config.FormatYAML, result.Config.Format)
	assert.Equal(t, []string{explicit}, result.LoadedFrom)
}

func TestLoad_Precedence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, ".gomdmark.yml", "format: json\nworkers: 2\ncache: project.db\n")

	env := map[string]string{
		"GOMDMARK_WORKERS":    "6",
		"GOMDMARK_EXTENSIONS": " spoiler , ",
		"GOMDMARK_FORMAT":     "YAML",
		"GOMDMARK_CACHE":      "",
	}
	opts := filesOnly(dir)
	opts.IgnoreEnv = false
	opts.LookupEnv = func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
	opts.CLIConfig = &config.Config{Format: config.FormatSummary, Positions: true}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, 6, cfg.Workers, "environment over file")
	assert.Equal(t, []string{"spoiler"}, cfg.Extensions)
	assert.Equal(t, "project.db", cfg.Cache, "blank variables are ignored")
	assert.Equal(t, config.FormatSummary, cfg.Format, "flags over environment")
	assert.True(t, cfg.Positions)
}

func TestLoad_Rejects(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		body     string
		sentinel error
		msg      string
	}{
		"unknown extension": {"extensions: [superscript]\n", config.ErrUnknownExtension, "superscript"},
		"unknown format":    {"format: html\n", config.ErrUnknownFormat, `"html"`},
		"unknown transform": {"transforms: [toc]\n", config.ErrUnknownTransform, "toc"},
		"negative workers":  {"workers: -1\n", nil, "workers"},
		"bad glob":          {"ignore: ['docs/[a']\n", nil, "invalid glob pattern"},
		"malformed yaml":    {"extensions: [underline\n", nil, "parse yaml"},
		"unknown key":       {"rules: {MD001: false}\n", nil, "rules"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := writeConfig(t, dir, ".gomdmark.yml", tc.body)

			_, err := Load(context.Background(), filesOnly(dir))
			require.Error(t, err)
			if tc.sentinel != nil {
				require.ErrorIs(t, err, tc.sentinel)
			}
			assert.Contains(t, err.Error(), tc.msg)
			assert.Contains(t, err.Error(), path)
		})
	}
}

func TestLoad_UnknownConstructIsAWarning(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, ".gomdmark.yml", "disable: [tables, html]\n")

	result, err := Load(context.Background(), filesOnly(dir))
	require.NoError(t, err)

	assert.Equal(t, []string{"tables", "htmlFlow", "htmlText"}, result.Config.Disable)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], `"tables"`)
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, filesOnly(t.TempDir()))
	require.ErrorIs(t, err, context.Canceled)
}

func TestOverlay(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	base.Ignore = []string{"vendor/**"}
	top := &config.Config{Workers: 8, Transforms: []string{config.TransformLangDetect}, Extensions: []string{}}

	got := overlay(base, top)

	assert.Equal(t, 8, got.Workers)
	assert.Equal(t, config.FormatPretty, got.Format, "zero scalars are unset")
	assert.Equal(t, []string{"vendor/**"}, got.Ignore, "nil lists are unset")
	assert.Equal(t, []string{config.TransformLangDetect}, got.Transforms)
	assert.Equal(t, []string{}, got.Extensions)
	assert.Equal(t, config.KnownExtensions(), base.Extensions, "base is not modified")

	assert.Same(t, top, overlay(nil, top))
	assert.Same(t, base, overlay(base, nil))
}

func TestApplyEnv(t *testing.T) {
	t.Parallel()

	only := func(name, value string) func(string) (string, bool) {
		return func(key string) (string, bool) {
			if key == name {
				return value, true
			}
			return "", false
		}
	}

	t.Run("blank list clears", func(t *testing.T) {
		t.Parallel()
		cfg := config.NewConfig()
		require.NoError(t, applyEnv(cfg, only("GOMDMARK_EXTENSIONS", "")))
		assert.NotNil(t, cfg.Extensions)
		assert.Empty(t, cfg.Extensions)
	})

	t.Run("bad integer names the variable", func(t *testing.T) {
		t.Parallel()
		err := applyEnv(config.NewConfig(), only("GOMDMARK_WORKERS", "many"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GOMDMARK_WORKERS")
	})

	t.Run("table", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "GOMDMARK_DISABLE", EnvVarFor("disable"))
		assert.Empty(t, EnvVarFor("positions"))
		for _, v := range EnvVars() {
			assert.True(t, strings.HasPrefix(v.Name, envPrefix), v.Name)
			assert.NotEmpty(t, v.Help, v.Name)
		}
	})
}

func TestExpandConstructNames(t *testing.T) {
	t.Parallel()

	got := expandConstructNames([]string{"Fenced-Code", "code", "hr", "codeFenced"})
	assert.Equal(t, []string{"codeFenced", "codeIndented", "codeText", "thematicBreak"}, got)
	assert.Nil(t, expandConstructNames(nil))
	assert.Equal(t, []string{"html-block", "html-flow"}, GetAliasesForConstruct("htmlFlow"))
}

func TestWriteConfig(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), ".gomdmark.yml")

	cfg := config.NewConfig()
	cfg.Disable = []string{"codeIndented"}
	require.NoError(t, WriteConfig(ctx, cfg, path, false))
	require.Error(t, WriteConfig(ctx, cfg, path, false), "existing file needs force")
	require.NoError(t, WriteConfig(ctx, cfg, path, true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), config.DefaultTemplateHeader()+"\n\n"))

	reloaded, err := readConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Extensions, reloaded.Extensions)
	assert.Equal(t, cfg.Disable, reloaded.Disable)
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdmark/internal/configloader"
	"github.com/yaklabco/gomdmark/internal/logging"
	"github.com/yaklabco/gomdmark/pkg/cache"
	"github.com/yaklabco/gomdmark/pkg/config"
	"github.com/yaklabco/gomdmark/pkg/markdown"
)

// grammarFlags are the flags shared by commands that parse Markdown.
type grammarFlags struct {
	extensions []string
	disable    []string
	transforms []string
	format     string
	positions  bool
}

func addGrammarFlags(cmd *cobra.Command, flags *grammarFlags) {
	cmd.Flags().StringSliceVar(&flags.extensions, "extensions", nil,
		"inline marks to enable: underline, strikethrough, spoiler (empty for plain CommonMark)")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "constructs to turn off, such as indented-code or html")
	cmd.Flags().StringSliceVar(&flags.transforms, "transforms", nil, "tree transforms to run: langdetect")
	cmd.Flags().StringVar(&flags.format, "format", "", "output format: pretty, json, yaml, summary")
	cmd.Flags().BoolVar(&flags.positions, "positions", true, "include node positions in output")
}

// apply copies explicitly set flags onto the CLI configuration layer.
func (f *grammarFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("extensions") {
		cfg.Extensions = nonNil(f.extensions)
	}
	if cmd.Flags().Changed("disable") {
		cfg.Disable = nonNil(f.disable)
	}
	if cmd.Flags().Changed("transforms") {
		cfg.Transforms = nonNil(f.transforms)
	}
	if f.format != "" {
		format, err := config.ParseFormat(f.format)
		if err != nil {
			return errors.Join(ErrUsage, err)
		}
		cfg.Format = format
	}
	cfg.Positions = f.positions
	return nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// loadConfig resolves the configuration layers with cliCfg on top.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, error) {
	logger := logging.Default()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}
	color, err := cmd.Flags().GetString("color")
	if err != nil {
		return nil, fmt.Errorf("get color flag: %w", err)
	}
	cliCfg.Color = config.ColorMode(color)

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(ErrConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldExtensions, cfg.Extensions,
		logging.FieldDisable, cfg.Disable,
		logging.FieldFormat, cfg.Format,
		logging.FieldWorkers, cfg.Workers,
		logging.FieldCache, cfg.Cache,
	)
	return cfg, nil
}

// newParser builds a parser for cfg. The engine traces through the default
// logger only when it is at debug level.
func newParser(cfg *config.Config) (*markdown.Parser, error) {
	opts, err := markdown.FromConfig(cfg)
	if err != nil {
		return nil, errors.Join(ErrConfig, err)
	}

	logger := logging.Default()
	if logger.GetLevel() <= log.DebugLevel {
		opts = append(opts, markdown.WithLogger(logger))
	}
	return markdown.NewParser(opts...), nil
}

// openCache opens the parse cache named by cfg, or returns nil when caching
// is off. A cache that cannot be opened is reported and skipped.
func openCache(cfg *config.Config) *cache.Cache {
	if cfg.Cache == "" {
		return nil
	}

	c, err := cache.Open(cfg.Cache)
	if err != nil {
		logging.Default().Warn("parse cache disabled", logging.FieldCache, cfg.Cache, logging.FieldError, err)
		return nil
	}
	return c
}

// cacheFingerprint identifies the grammar settings a cached tree was built with.
func cacheFingerprint(cfg *config.Config) string {
	return cache.Fingerprint(cfg.Extensions, cfg.Disable, cfg.Transforms)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

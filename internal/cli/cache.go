package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdmark/internal/configloader"
	"github.com/yaklabco/gomdmark/internal/logging"
	"github.com/yaklabco/gomdmark/pkg/cache"
	"github.com/yaklabco/gomdmark/pkg/config"
)

func newCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the parse cache",
		Long: `The parse cache stores trees keyed by file content and grammar settings,
so unchanged files are not parsed again. It is used when "cache" is set in
configuration or --cache is passed to parse.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "info",
		Short: "Show the cache location and number of stored trees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withCache(cmd, func(c *cache.Cache) error {
				count, err := c.Len()
				if err != nil {
					return err
				}
				logging.NewInteractive().Info("parse cache", logging.FieldPath, c.Path(), "trees", count)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every stored tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withCache(cmd, func(c *cache.Cache) error {
				if err := c.Clear(); err != nil {
					return err
				}
				logging.NewInteractive().Info("cleared parse cache", logging.FieldPath, c.Path())
				return nil
			})
		},
	})

	return cmd
}

// withCache opens the configured cache, or the default location when
// none is configured, and runs fn with it.
func withCache(cmd *cobra.Command, fn func(*cache.Cache) error) (err error) {
	cfg, err := loadConfig(cmd, &config.Config{})
	if err != nil {
		return err
	}

	path := cfg.Cache
	if path == "" {
		path = configloader.DefaultCachePath()
	}

	c, err := cache.Open(path)
	if err != nil {
		return errors.Join(ErrIO, err)
	}
	defer func() {
		if closeErr := c.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("close cache: %w", closeErr)
		}
	}()

	if err := fn(c); err != nil {
		return errors.Join(ErrIO, err)
	}
	return nil
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdmark/internal/configloader"
	"github.com/yaklabco/gomdmark/internal/logging"
	"github.com/yaklabco/gomdmark/pkg/config"
	"github.com/yaklabco/gomdmark/pkg/fsutil"
	"github.com/yaklabco/gomdmark/pkg/micromark"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force    bool
	full     bool
	resolved bool
	format   string
	output   string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new gomdmark configuration file",
		Long: `Create a new .gomdmark.yml configuration file in the current directory
with sensible defaults. The file can be customized to choose inline marks,
disable constructs, and set the output format.

Examples:
  gomdmark init                   Create minimal .gomdmark.yml
  gomdmark init --full            Create full config with every construct listed
  gomdmark init --resolved        Save the configuration currently in effect
  gomdmark init --format json     Create .gomdmark.json instead
  gomdmark init --output custom.yml  Write to a custom file path`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with all settings documented")
	cmd.Flags().BoolVar(&flags.resolved, "resolved", false, "Write the merged configuration from all sources")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .gomdmark.yml or .gomdmark.json)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()

	if flags.format != "yaml" && flags.format != formatJSON {
		return fmt.Errorf("%w: invalid format %q: must be yaml or json", ErrUsage, flags.format)
	}
	if flags.resolved && flags.format == formatJSON {
		return fmt.Errorf("%w: --resolved writes YAML only", ErrUsage)
	}

	outputPath := flags.output
	if outputPath == "" {
		if flags.format == formatJSON {
			outputPath = ".gomdmark.json"
		} else {
			outputPath = ".gomdmark.yml"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrUsage, outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	if flags.resolved {
		cfg, err := loadConfig(cmd, &config.Config{})
		if err != nil {
			return err
		}
		if err := configloader.WriteConfig(commandContext(cmd), cfg, absPath, true); err != nil {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
		logger.Info("saved resolved configuration", logging.FieldPath, outputPath)
		return nil
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:       flags.full,
		Format:     flags.format,
		Constructs: micromark.ConstructNames(markExtensions()...),
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := fsutil.WriteAtomic(commandContext(cmd), absPath, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("%w: write file: %w", ErrIO, err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	if flags.full {
		logger.Info("full template lists every construct that can be disabled")
	}
	logger.Info("run 'gomdmark constructs' to see construct aliases and groups")

	return nil
}

// Package cli provides the Cobra command structure for gomdmark.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdmark/internal/configloader"
	"github.com/yaklabco/gomdmark/internal/logging"
	"github.com/yaklabco/gomdmark/pkg/config"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root gomdmark command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "gomdmark",
		Short: "A CommonMark parser that turns Markdown into a positioned syntax tree",
		Long: `gomdmark parses Markdown into an mdast syntax tree where every node
carries its exact source position.

It implements the full CommonMark grammar as a set of composable constructs,
plus underline (__text__), strikethrough (~~text~~) and spoiler (||text||)
marks. Constructs can be disabled individually, trees can be printed as a
styled outline, JSON or YAML, and the raw token event stream can be
inspected when debugging a grammar.` + environmentHelp(),
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
			cmd.SetContext(logging.WithFields(commandContext(cmd), logging.FieldCommand, cmd.Name()))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", string(config.ColorAuto),
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newParseCommand())
	rootCmd.AddCommand(newEventsCommand())
	rootCmd.AddCommand(newConstructsCommand())
	rootCmd.AddCommand(newCacheCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(config.ColorMode(color), os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

// environmentHelp lists the GOMDMARK_* overrides for the root help text.
func environmentHelp() string {
	var b strings.Builder
	b.WriteString("\n\nEnvironment:")
	for _, v := range configloader.EnvVars() {
		fmt.Fprintf(&b, "\n  %-21s %s", v.Name, v.Help)
	}
	return b.String()
}

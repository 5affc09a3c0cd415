package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdmark/internal/logging"
	"github.com/yaklabco/gomdmark/pkg/config"
	"github.com/yaklabco/gomdmark/pkg/fsutil"
	"github.com/yaklabco/gomdmark/pkg/reporter"
)

type eventsFlags struct {
	grammarFlags

	output  string
	compact bool
}

func newEventsCommand() *cobra.Command {
	flags := &eventsFlags{}

	cmd := &cobra.Command{
		Use:   "events [path]",
		Short: "Print the token event stream of a Markdown file",
		Long: `Print the resolved enter/exit event stream that the compiler turns into
a tree. Each line shows the event kind, the token type indented by nesting
depth, and the token's start and end. Reads standard input when the path is
"-" or omitted.

Examples:
  gomdmark events README.md
  printf '*a*' | gomdmark events
  gomdmark events --format json --disable attention notes.md`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvents(cmd, args, flags)
		},
	}

	addGrammarFlags(cmd, &flags.grammarFlags)
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write output to a file instead of stdout")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "minify JSON output")

	return cmd
}

func runEvents(cmd *cobra.Command, args []string, flags *eventsFlags) error {
	ctx := commandContext(cmd)

	cliCfg := &config.Config{Output: flags.output}
	if err := flags.apply(cmd, cliCfg); err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}
	if cfg.Format == config.FormatSummary {
		return errors.Join(ErrUsage, fmt.Errorf("%w: %q is not available for events", config.ErrUnknownFormat, cfg.Format))
	}

	parser, err := newParser(cfg)
	if err != nil {
		return err
	}

	path := fsutil.StdinPath
	if len(args) == 1 {
		path = args[0]
	}

	content, _, err := fsutil.ReadInput(ctx, path, cmd.InOrStdin())
	if err != nil {
		return errors.Join(ErrIO, err)
	}

	events, err := parser.Events(ctx, content)
	if err != nil {
		return errors.Join(ErrParseFailed, fmt.Errorf("parse %s: %w", path, err))
	}
	logging.FromContext(ctx).Debug("tokenized", logging.FieldPath, path, logging.FieldEvents, len(events))

	opts := reporter.Options{
		Format:    cfg.Format,
		Color:     cfg.Color,
		Positions: cfg.Positions,
		Compact:   flags.compact,
	}
	if cfg.Output == "" {
		return reporter.WriteEvents(cmd.OutOrStdout(), events, opts)
	}

	opts.Color = config.ColorNever
	if err := fsutil.WriteAtomicFunc(ctx, cfg.Output, fsutil.DefaultFileMode, func(w io.Writer) error {
		return reporter.WriteEvents(w, events, opts)
	}); err != nil {
		return errors.Join(ErrIO, fmt.Errorf("write %s: %w", cfg.Output, err))
	}
	return nil
}

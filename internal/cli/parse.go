package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/gomdmark/internal/configloader"
	"github.com/yaklabco/gomdmark/internal/logging"
	"github.com/yaklabco/gomdmark/pkg/config"
	"github.com/yaklabco/gomdmark/pkg/fsutil"
	"github.com/yaklabco/gomdmark/pkg/reporter"
	"github.com/yaklabco/gomdmark/pkg/runner"
)

type parseFlags struct {
	grammarFlags

	output  string
	workers int
	ignore  []string
	cache   string
	noCache bool
	compact bool
}

func newParseCommand() *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse [paths...]",
		Short: "Parse Markdown files and print their syntax trees",
		Long:  parseLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, flags)
		},
	}

	addGrammarFlags(cmd, &flags.grammarFlags)
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write output to a file instead of stdout")
	cmd.Flags().IntVar(&flags.workers, "workers", 0, "number of files parsed in parallel (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringVar(&flags.cache, "cache", "", "parse cache database (default location when given without a value)")
	cmd.Flags().Lookup("cache").NoOptDefVal = configloader.DefaultCachePath()
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "do not read or write the parse cache")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "minify JSON output")

	return cmd
}

const parseLongDescription = `Parse Markdown files and print their syntax trees.

By default, parses all .md and .markdown files in the current directory
and subdirectories. Specify paths to parse specific files or directories,
or "-" to read standard input. When standard input is piped and no paths
are given, it is parsed instead of the current directory.

Examples:
  gomdmark parse README.md                 # Print the tree of one file
  gomdmark parse docs/ --format summary    # Node counts for a directory
  gomdmark parse --format json -o tree.json README.md
  echo '||hidden||' | gomdmark parse       # Parse standard input
  gomdmark parse --extensions= README.md   # Plain CommonMark
  gomdmark parse --disable indented-code   # Turn a construct off
  gomdmark parse --cache docs/             # Reuse trees of unchanged files`

func runParse(cmd *cobra.Command, args []string, flags *parseFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cliCfg := &config.Config{
		Workers: flags.workers,
		Cache:   flags.cache,
		Output:  flags.output,
	}
	if cmd.Flags().Changed("ignore") {
		cliCfg.Ignore = nonNil(flags.ignore)
	}
	if err := flags.apply(cmd, cliCfg); err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}
	if flags.noCache {
		cfg.Cache = ""
	}

	parser, err := newParser(cfg)
	if err != nil {
		return err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	stdin := cmd.InOrStdin()
	if len(args) == 0 && stdinIsPiped(stdin) {
		args = []string{fsutil.StdinPath}
	}

	parseCache := openCache(cfg)
	if parseCache != nil {
		defer func() {
			if closeErr := parseCache.Close(); closeErr != nil {
				logger.Warn("close parse cache", logging.FieldError, closeErr)
			}
		}()
	}

	parseRunner := runner.New(parser)
	parseRunner.Logger = logger

	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		ExcludeGlobs: cfg.Ignore,
		Workers:      cfg.Workers,
		Stdin:        stdin,
		Cache:        parseCache,
		Fingerprint:  cacheFingerprint(cfg),
	}

	logger.Debug("starting parse run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldWorkers, runOpts.Workers,
	)

	result, err := parseRunner.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(ErrIO, err)
	}

	logger.Debug("parse run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesParsed, result.Stats.FilesParsed,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
		logging.FieldCacheHits, result.Stats.CacheHits,
	)

	repOpts := reporter.Options{
		Format:      cfg.Format,
		Color:       cfg.Color,
		Positions:   cfg.Positions,
		ShowSummary: true,
		Compact:     flags.compact,
		WorkingDir:  workDir,
	}
	if err := writeOutput(cmd, cfg.Output, &repOpts, func(rep reporter.Reporter) error {
		return rep.Report(ctx, result)
	}); err != nil {
		return err
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrParseFailed
	}
	return nil
}

// writeOutput runs report against stdout or, when output is set, an
// atomically replaced file. Colors are never written to files.
func writeOutput(cmd *cobra.Command, output string, opts *reporter.Options, report func(reporter.Reporter) error) error {
	if output == "" {
		opts.Writer = cmd.OutOrStdout()
		rep, err := reporter.New(*opts)
		if err != nil {
			return errors.Join(ErrUsage, err)
		}
		return report(rep)
	}

	opts.Color = config.ColorNever
	err := fsutil.WriteAtomicFunc(commandContext(cmd), output, fsutil.DefaultFileMode, func(w io.Writer) error {
		opts.Writer = w
		rep, err := reporter.New(*opts)
		if err != nil {
			return errors.Join(ErrUsage, err)
		}
		return report(rep)
	})
	if err != nil {
		if errors.Is(err, ErrUsage) {
			return err
		}
		return errors.Join(ErrIO, fmt.Errorf("write %s: %w", output, err))
	}

	logging.FromContext(commandContext(cmd)).Debug("wrote output", logging.FieldOutput, output)
	return nil
}

// stdinIsPiped reports whether r is a standard input that is not a terminal.
func stdinIsPiped(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok || f != os.Stdin {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice == 0 && !term.IsTerminal(int(f.Fd()))
}

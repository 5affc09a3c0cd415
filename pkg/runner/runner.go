package runner

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/gomdmark/pkg/cache"
	"github.com/yaklabco/gomdmark/pkg/fsutil"
	"github.com/yaklabco/gomdmark/pkg/markdown"
	"github.com/yaklabco/gomdmark/pkg/mdast"
)

// Runner parses batches of files with a shared parser.
type Runner struct {
	// Parser builds the trees. It is shared by all workers.
	Parser *markdown.Parser

	// Logger receives per-file debug lines and cache warnings. Optional.
	Logger *log.Logger
}

// New creates a new Runner with the given parser.
func New(parser *markdown.Parser) *Runner {
	return &Runner{Parser: parser}
}

// Run discovers files under opts.Paths and parses them concurrently.
// A file that fails to parse is recorded in its outcome and does not stop
// the run; only discovery errors and cancellation are returned.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// Each worker writes only its own slot, which keeps input order.
	outcomes := make([]FileOutcome, len(files))

	var group errgroup.Group
	group.SetLimit(workers)
	for i, path := range files {
		if ctx.Err() != nil {
			break
		}
		group.Go(func() error {
			outcomes[i] = r.process(ctx, path, opts)
			return nil
		})
	}
	_ = group.Wait()

	for _, outcome := range outcomes {
		if outcome.Path != "" {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}
	return result, nil
}

// process reads and parses one file, going through the cache when set.
func (r *Runner) process(ctx context.Context, path string, opts Options) (outcome FileOutcome) {
	start := time.Now()
	outcome.Path = path
	defer func() {
		outcome.Duration = time.Since(start)
	}()

	stdin := opts.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}

	content, info, err := fsutil.ReadInput(ctx, path, stdin)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Info = info

	var key cache.Key
	if opts.Cache != nil {
		key = cache.NewKey(info.Hash, opts.Fingerprint)
		root, ok, err := opts.Cache.Get(key)
		switch {
		case err != nil:
			r.warn("cache read failed", "path", path, "error", err)
		case ok:
			outcome.Snapshot = mdast.NewFileSnapshot(path, markdown.StripBOM(content), root)
			outcome.Cached = true
			r.debug("cache hit", "path", path)
			return outcome
		}
	}

	snapshot, err := r.Parser.Parse(ctx, path, content)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Snapshot = snapshot

	if opts.Cache != nil {
		if err := opts.Cache.Put(key, snapshot.Root); err != nil {
			r.warn("cache write failed", "path", path, "error", err)
		}
	}

	r.debug("parsed", "path", path, "duration", time.Since(start))
	return outcome
}

func (r *Runner) debug(msg string, keyvals ...any) {
	if r.Logger != nil {
		r.Logger.Debug(msg, keyvals...)
	}
}

func (r *Runner) warn(msg string, keyvals ...any) {
	if r.Logger != nil {
		r.Logger.Warn(msg, keyvals...)
	}
}

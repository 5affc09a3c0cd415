package runner

import (
	"time"

	"github.com/yaklabco/gomdmark/pkg/fsutil"
	"github.com/yaklabco/gomdmark/pkg/mdast"
)

// FileOutcome is the result of parsing one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Snapshot holds the tree and content. Nil when Error is set.
	Snapshot *mdast.FileSnapshot

	// Info describes the content that was read.
	Info *fsutil.FileInfo

	// Cached is true when the tree came from the cache.
	Cached bool

	// Duration is the time spent reading and parsing.
	Duration time.Duration

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesParsed is the number of files that produced a tree.
	FilesParsed int

	// FilesErrored is the number of files that failed.
	FilesErrored int

	// CacheHits is the number of trees served from the cache.
	CacheHits int

	// Bytes is the total size of the parsed content.
	Bytes int64

	// Nodes is the total number of tree nodes.
	Nodes int

	// NodesByKind counts nodes per kind across all files.
	NodesByKind map[mdast.NodeKind]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, in input order.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any file failed.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{
		NodesByKind: make(map[mdast.NodeKind]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Snapshot == nil {
		return
	}

	r.Stats.FilesParsed++
	if outcome.Cached {
		r.Stats.CacheHits++
	}
	r.Stats.Bytes += int64(len(outcome.Snapshot.Content))

	mdast.Inspect(outcome.Snapshot.Root, func(n *mdast.Node) bool {
		r.Stats.Nodes++
		r.Stats.NodesByKind[n.Kind]++
		return true
	})
}

package reporter

import (
	"path/filepath"
	"strings"

	"github.com/yaklabco/gomdmark/pkg/mdast"
	"github.com/yaklabco/gomdmark/pkg/runner"
)

// documentVersion identifies the layout of Document.
const documentVersion = "1"

// Document is the structured form of a run, shared by JSON and YAML.
type Document struct {
	Version string         `json:"version" yaml:"version"`
	Files   []FileDocument `json:"files" yaml:"files"`
	Summary Summary        `json:"summary" yaml:"summary"`
}

// FileDocument is one file's tree or error.
type FileDocument struct {
	Path   string         `json:"path" yaml:"path"`
	Cached bool           `json:"cached,omitempty" yaml:"cached,omitempty"`
	Error  string         `json:"error,omitempty" yaml:"error,omitempty"`
	Tree   *mdast.Encoded `json:"tree,omitempty" yaml:"tree,omitempty"`
}

// Summary contains aggregate statistics.
type Summary struct {
	FilesDiscovered int            `json:"filesDiscovered" yaml:"filesDiscovered"`
	FilesParsed     int            `json:"filesParsed" yaml:"filesParsed"`
	FilesErrored    int            `json:"filesErrored" yaml:"filesErrored"`
	CacheHits       int            `json:"cacheHits" yaml:"cacheHits"`
	Bytes           int64          `json:"bytes" yaml:"bytes"`
	Nodes           int            `json:"nodes" yaml:"nodes"`
	NodesByKind     map[string]int `json:"nodesByKind" yaml:"nodesByKind"`
}

// BuildDocument converts a run result into its structured form.
func BuildDocument(result *runner.Result, opts Options) *Document {
	doc := &Document{
		Version: documentVersion,
		Files:   make([]FileDocument, 0),
		Summary: Summary{NodesByKind: make(map[string]int)},
	}
	if result == nil {
		return doc
	}

	if len(result.Files) > 0 {
		doc.Files = make([]FileDocument, 0, len(result.Files))
	}
	for _, file := range result.Files {
		fileDoc := FileDocument{
			Path:   displayPath(file.Path, opts.WorkingDir),
			Cached: file.Cached,
		}
		if file.Error != nil {
			fileDoc.Error = file.Error.Error()
		}
		if file.Snapshot != nil {
			fileDoc.Tree = mdast.Encode(file.Snapshot.Root, opts.Positions)
		}
		doc.Files = append(doc.Files, fileDoc)
	}

	stats := result.Stats
	doc.Summary.FilesDiscovered = stats.FilesDiscovered
	doc.Summary.FilesParsed = stats.FilesParsed
	doc.Summary.FilesErrored = stats.FilesErrored
	doc.Summary.CacheHits = stats.CacheHits
	doc.Summary.Bytes = stats.Bytes
	doc.Summary.Nodes = stats.Nodes
	for kind, count := range stats.NodesByKind {
		doc.Summary.NodesByKind[kind.String()] = count
	}

	return doc
}

// displayPath makes path relative to workingDir when it is inside it.
func displayPath(path, workingDir string) string {
	if workingDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(workingDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

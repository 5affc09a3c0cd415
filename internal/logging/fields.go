package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldDuration   = "duration"
	FieldCommand    = "command"

	// Configuration fields.
	FieldConfig     = "config"
	FieldExtensions = "extensions"
	FieldDisable    = "disable"
	FieldFormat     = "format"
	FieldWorkers    = "workers"
	FieldCache      = "cache"

	// Engine fields.
	FieldConstruct = "construct"
	FieldToken     = "token"
	FieldEvents    = "events"
	FieldNodes     = "nodes"
	FieldWorker    = "worker"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesParsed     = "files_parsed"
	FieldFilesFailed     = "files_failed"
	FieldCacheHits       = "cache_hits"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)

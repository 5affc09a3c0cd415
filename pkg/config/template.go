package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every setting, including the constructs that can be
	// disabled. If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string

	// Constructs lists the construct names that may appear under disable.
	Constructs []string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}
	if opts.Full {
		return generateFullTemplate(opts), nil
	}
	return generateMinimalTemplate(), nil
}

func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Inline marks: underline (__a__), strikethrough (~~a~~), spoiler (||a||)
extensions:
  - underline
  - strikethrough
  - spoiler

# Output format: pretty, json, yaml, or summary
format: pretty

# Number of parallel workers (0 = auto)
# workers: 0

# Constructs to turn off
# disable:
#   - codeIndented

# Tree transforms to run after parsing
# transforms:
#   - langdetect
`)

	return buf.Bytes()
}

func generateFullTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(`# gomdmark configuration - Full Template
# See: https://github.com/yaklabco/gomdmark
#
# This template documents every setting with its default value.
# Uncomment and modify settings as needed.

# Inline marks to enable. An empty list parses plain CommonMark.
extensions:
  - underline
  - strikethrough
  - spoiler

# Output format: pretty, json, yaml, or summary
format: pretty

# Number of parallel workers (0 = auto based on CPU cores)
workers: 0

# Parse cache database; leave empty to disable caching
# cache: ~/.cache/gomdmark/cache.db

# File patterns to ignore when walking directories (glob patterns)
ignore:
  - "vendor/**"
  - "node_modules/**"

# Tree transforms run in order after parsing.
# langdetect: fill in the language of fenced code without an info string
transforms: []

`)

	buf.WriteString("# " + wrapComment(
		"Constructs to turn off. Disabling codeIndented also lets container "+
			"prefixes take any amount of indentation.", commentWrapWidth) + "\n")
	buf.WriteString("disable: []\n")
	if len(opts.Constructs) > 0 {
		buf.WriteString("# Available constructs:\n")
		for _, name := range opts.Constructs {
			buf.WriteString(fmt.Sprintf("#   - %s\n", name))
		}
	}

	return buf.Bytes()
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n# ")
}

// templateToJSON renders the default configuration as JSON.
func templateToJSON() ([]byte, error) {
	defaults := NewConfig()
	cfg := map[string]any{
		"extensions": defaults.Extensions,
		"disable":    []string{},
		"transforms": []string{},
		"format":     string(defaults.Format),
		"workers":    defaults.Workers,
		"ignore":     []string{"vendor/**", "node_modules/**"},
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return append(jsonBytes, '\n'), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# gomdmark configuration
# See: https://github.com/yaklabco/gomdmark`
}

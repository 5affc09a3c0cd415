// Package langdetect guesses the language of code blocks. It uses go-enry
// plus a few cheap patterns, and offers a tree transform that fills in the
// language of code blocks written without an info string.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language constants for common detected languages.
const (
	langGo         = "go"
	langPython     = "python"
	langJavaScript = "javascript"
	langJSON       = "json"
	langYAML       = "yaml"
	langHTML       = "html"
	langSQL        = "sql"
	langRust       = "rust"
	langDockerfile = "dockerfile"
	langText       = "text"
	langBash       = "bash"
)

// snippet is a code sample prepared once for all detectors.
type snippet struct {
	raw     []byte
	trimmed []byte
	text    string
}

// detectors are tried in order of specificity; the first match wins.
var detectors = []struct {
	lang  string
	match func(s snippet) bool
}{
	{langGo, isGo},
	{langPython, isPython},
	{langHTML, isHTML},
	{langJSON, isJSON},
	{langDockerfile, isDockerfile},
	{langSQL, isSQL},
	{langRust, isRust},
	{langJavaScript, isJavaScript},
	{langYAML, isYAML},
}

// classifierCandidates bounds the go-enry classifier to common fence languages.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// Detect returns the fence language of code content.
// Returns "text" if detection fails or confidence is low.
func Detect(content []byte) string {
	if len(content) == 0 {
		return langText
	}

	// A shebang is the most reliable signal.
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	s := snippet{raw: content, trimmed: bytes.TrimSpace(content), text: string(content)}
	for _, d := range detectors {
		if d.match(s) {
			return d.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return langText
}

func isGo(s snippet) bool {
	return bytes.HasPrefix(s.trimmed, []byte("package "))
}

func isPython(s snippet) bool {
	text := s.text
	if strings.Contains(text, "def ") && strings.Contains(text, "):") {
		return true
	}
	// Go imports use "import (".
	if strings.Contains(text, "import ") && !strings.Contains(text, "import (") &&
		(strings.Contains(text, "from ") || strings.HasPrefix(strings.TrimSpace(text), "import ")) {
		return true
	}
	return strings.Contains(text, "__name__") || strings.Contains(text, "__main__")
}

func isHTML(s snippet) bool {
	lower := bytes.ToLower(s.trimmed)
	for _, marker := range []string{"<!doctype html", "<html", "<head>", "<body>"} {
		if bytes.Contains(lower, []byte(marker)) {
			return true
		}
	}
	return false
}

func isJSON(s snippet) bool {
	return (bytes.HasPrefix(s.trimmed, []byte("{")) || bytes.HasPrefix(s.trimmed, []byte("["))) &&
		bytes.Contains(s.trimmed, []byte(`"`))
}

func isDockerfile(s snippet) bool {
	return bytes.HasPrefix(s.trimmed, []byte("FROM ")) ||
		(bytes.Contains(s.raw, []byte("\nFROM ")) && bytes.Contains(s.raw, []byte("\nRUN "))) ||
		(bytes.Contains(s.raw, []byte("WORKDIR ")) && bytes.Contains(s.raw, []byte("COPY ")))
}

func isSQL(s snippet) bool {
	upper := strings.TrimSpace(strings.ToUpper(s.text))
	for _, keyword := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
		if strings.HasPrefix(upper, keyword) {
			return true
		}
	}
	return false
}

func isRust(s snippet) bool {
	return strings.Contains(s.text, "fn main()") ||
		strings.Contains(s.text, "println!") ||
		strings.Contains(s.text, "let mut ")
}

func isJavaScript(s snippet) bool {
	for _, marker := range []string{"=>", "const ", "let ", "console.log"} {
		if strings.Contains(s.text, marker) {
			return true
		}
	}
	return false
}

// isYAML counts key: value pairs and root list items.
func isYAML(s snippet) bool {
	count := 0
	for _, line := range bytes.Split(s.raw, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || bytes.HasPrefix(line, []byte("#")) {
			continue
		}
		// Lines with parentheses or braces look like code.
		if bytes.Contains(line, []byte(": ")) &&
			!bytes.Contains(line, []byte("(")) &&
			!bytes.Contains(line, []byte("{")) &&
			!bytes.HasPrefix(line, []byte(`"`)) {
			count++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			count++
		}
	}
	return count >= 2
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return langBash
	}
	return strings.ToLower(lang)
}

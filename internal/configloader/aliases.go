package configloader

import (
	"slices"
	"strings"
)

// constructAliases maps friendly construct names to the names the grammar
// uses. Keys are compared after lower-casing.
//
//nolint:gochecknoglobals // Read-only lookup table.
var constructAliases = map[string]string{
	// Headings
	"atx-heading":    "headingAtx",
	"heading-atx":    "headingAtx",
	"setext-heading": "setextUnderline",

	// Code
	"indented-code": "codeIndented",
	"code-indented": "codeIndented",
	"fenced-code":   "codeFenced",
	"code-fenced":   "codeFenced",
	"code-span":     "codeText",
	"inline-code":   "codeText",

	// HTML
	"html-block":  "htmlFlow",
	"html-flow":   "htmlFlow",
	"inline-html": "htmlText",
	"html-text":   "htmlText",

	// Containers
	"blockquote":  "blockQuote",
	"block-quote": "blockQuote",

	// Leaf blocks
	"hr":             "thematicBreak",
	"thematic-break": "thematicBreak",

	// Links
	"link-start":      "labelStartLink",
	"image-start":     "labelStartImage",
	"label-end":       "labelEnd",
	"link-definition": "definition",

	// Inline
	"emphasis":            "attention",
	"entity":              "characterReference",
	"character-reference": "characterReference",
	"escape":              "characterEscape",
	"character-escape":    "characterEscape",
	"hard-break":          "hardBreakEscape",
}

// constructGroups maps group names to the constructs they contain. Groups
// can be used under disable to turn off related constructs at once.
//
//nolint:gochecknoglobals // Read-only lookup table.
var constructGroups = map[string][]string{
	"code":     {"codeFenced", "codeIndented", "codeText"},
	"headings": {"headingAtx", "setextUnderline"},
	"html":     {"htmlFlow", "htmlText"},
	"links":    {"labelStartLink", "labelStartImage", "labelEnd", "definition", "autolink"},
	"images":   {"labelStartImage"},
	"escapes":  {"characterEscape", "hardBreakEscape"},
}

// NormalizeConstructName converts an alias to the construct name the
// grammar uses. Unknown keys are returned unchanged.
func NormalizeConstructName(key string) string {
	if name, ok := constructAliases[strings.ToLower(key)]; ok {
		return name
	}
	return key
}

// IsGroup returns true if the key is a recognized construct group.
func IsGroup(key string) bool {
	_, ok := constructGroups[key]
	return ok
}

// GroupNames returns the construct group names, sorted.
func GroupNames() []string {
	names := make([]string, 0, len(constructGroups))
	for name := range constructGroups {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// GetGroupConstructs returns the construct names in a group.
// Returns nil if the group is not recognized.
func GetGroupConstructs(group string) []string {
	return constructGroups[group]
}

// GetAliasesForConstruct returns all aliases for a construct name, sorted.
func GetAliasesForConstruct(name string) []string {
	var aliases []string
	for alias, target := range constructAliases {
		if target == name {
			aliases = append(aliases, alias)
		}
	}
	slices.Sort(aliases)
	return aliases
}

// expandConstructNames resolves aliases and groups, dropping duplicates
// while keeping the first occurrence order.
func expandConstructNames(keys []string) []string {
	if keys == nil {
		return nil
	}

	result := make([]string, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			result = append(result, name)
		}
	}

	for _, key := range keys {
		if IsGroup(key) {
			for _, name := range GetGroupConstructs(key) {
				add(name)
			}
			continue
		}
		add(NormalizeConstructName(key))
	}
	return result
}

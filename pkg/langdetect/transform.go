package langdetect

import "github.com/yaklabco/gomdmark/pkg/mdast"

// Transform sets Lang on code nodes that have none, leaving it empty when
// nothing but plain text is detected.
func Transform(root *mdast.Node) *mdast.Node {
	mdast.Inspect(root, func(n *mdast.Node) bool {
		if n.Kind != mdast.NodeCode || n.Lang != "" {
			return true
		}
		if lang := Detect([]byte(n.Value)); lang != langText {
			n.Lang = lang
		}
		return true
	})
	return root
}

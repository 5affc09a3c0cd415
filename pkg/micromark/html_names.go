package micromark

import "slices"

// htmlBlockNames start a basic HTML block that ends at a blank line.
var htmlBlockNames = []string{
	"address", "article", "aside", "base", "basefont", "blockquote", "body",
	"caption", "center", "col", "colgroup", "dd", "details", "dialog", "dir",
	"div", "dl", "dt", "fieldset", "figcaption", "figure", "footer", "form",
	"frame", "frameset", "h1", "h2", "h3", "h4", "h5", "h6", "head", "header",
	"hr", "html", "iframe", "legend", "li", "link", "main", "menu", "menuitem",
	"nav", "noframes", "ol", "optgroup", "option", "p", "param", "search",
	"section", "summary", "table", "tbody", "td", "tfoot", "th", "thead",
	"title", "tr", "track", "ul",
}

// htmlRawNames hold raw text that ends at their closing tag.
var htmlRawNames = []string{"pre", "script", "style", "textarea"}

func isHTMLBlockName(name string) bool {
	return slices.Contains(htmlBlockNames, name)
}

func isHTMLRawName(name string) bool {
	return slices.Contains(htmlRawNames, name)
}

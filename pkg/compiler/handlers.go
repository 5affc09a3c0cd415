package compiler

import (
	"strconv"
	"strings"

	"github.com/yaklabco/gomdmark/pkg/mdast"
	"github.com/yaklabco/gomdmark/pkg/micromark"
)

// opener enters a node made by create, then runs and.
func opener(create func(tok *micromark.Token) *mdast.Node, and ...Handle) Handle {
	return func(c *Context, tok *micromark.Token) {
		c.Enter(create(tok), tok)
		for _, fn := range and {
			fn(c, tok)
		}
	}
}

// closer runs and, then exits the current node.
func closer(and ...Handle) Handle {
	return func(c *Context, tok *micromark.Token) {
		for _, fn := range and {
			fn(c, tok)
		}
		c.Exit(tok)
	}
}

func node(kind mdast.NodeKind) func(*micromark.Token) *mdast.Node {
	return func(*micromark.Token) *mdast.Node {
		return mdast.NewNode(kind)
	}
}

func buffer(c *Context, _ *micromark.Token) {
	c.Buffer()
}

func defaultEnter() map[micromark.TokenType]Handle {
	return map[micromark.TokenType]Handle{
		micromark.TypeAutolink:                    opener(node(mdast.NodeLink)),
		micromark.TypeAutolinkProtocol:            onEnterData,
		micromark.TypeAutolinkEmail:               onEnterData,
		micromark.TypeATXHeading:                  opener(node(mdast.NodeHeading)),
		micromark.TypeBlockQuote:                  opener(node(mdast.NodeBlockquote)),
		micromark.TypeCharacterEscape:             onEnterData,
		micromark.TypeCharacterReference:          onEnterData,
		micromark.TypeCodeFenced:                  opener(node(mdast.NodeCode)),
		micromark.TypeCodeFencedFenceInfo:         buffer,
		micromark.TypeCodeFencedFenceMeta:         buffer,
		micromark.TypeCodeIndented:                opener(node(mdast.NodeCode), buffer),
		micromark.TypeCodeText:                    opener(node(mdast.NodeInlineCode), buffer),
		micromark.TypeCodeTextData:                onEnterData,
		micromark.TypeData:                        onEnterData,
		micromark.TypeCodeFlowValue:               onEnterData,
		micromark.TypeDefinition:                  opener(node(mdast.NodeDefinition)),
		micromark.TypeDefinitionDestinationString: buffer,
		micromark.TypeDefinitionLabelString:       buffer,
		micromark.TypeDefinitionTitleString:       buffer,
		micromark.TypeEmphasis:                    opener(node(mdast.NodeEmphasis)),
		micromark.TypeHardBreakEscape:             opener(node(mdast.NodeBreak)),
		micromark.TypeHardBreakTrailing:           opener(node(mdast.NodeBreak)),
		micromark.TypeHTMLFlow:                    opener(node(mdast.NodeHTML), buffer),
		micromark.TypeHTMLFlowData:                onEnterData,
		micromark.TypeHTMLText:                    opener(node(mdast.NodeHTML), buffer),
		micromark.TypeHTMLTextData:                onEnterData,
		micromark.TypeImage:                       opener(node(mdast.NodeImage)),
		micromark.TypeLabel:                       buffer,
		micromark.TypeLink:                        opener(node(mdast.NodeLink)),
		micromark.TypeListItem:                    opener(newListItem),
		micromark.TypeListItemValue:               onEnterListItemValue,
		micromark.TypeListOrdered:                 opener(newList, onEnterListOrdered),
		micromark.TypeListUnordered:               opener(newList),
		micromark.TypeParagraph:                   opener(node(mdast.NodeParagraph)),
		micromark.TypeReference:                   onEnterReference,
		micromark.TypeReferenceString:             buffer,
		micromark.TypeResourceDestinationString:   buffer,
		micromark.TypeResourceTitleString:         buffer,
		micromark.TypeSetextHeading:               opener(node(mdast.NodeHeading)),
		micromark.TypeSpoiler:                     opener(node(mdast.NodeSpoiler)),
		micromark.TypeStrong:                      opener(node(mdast.NodeStrong)),
		micromark.TypeStrikethrough:               opener(node(mdast.NodeDelete)),
		micromark.TypeUnderline:                   opener(node(mdast.NodeUnderline)),
		micromark.TypeThematicBreak:               opener(node(mdast.NodeThematicBreak)),
	}
}

func defaultExit() map[micromark.TokenType]Handle {
	return map[micromark.TokenType]Handle{
		micromark.TypeATXHeading:                          closer(),
		micromark.TypeATXHeadingSequence:                  onExitATXHeadingSequence,
		micromark.TypeAutolink:                            closer(),
		micromark.TypeAutolinkEmail:                       onExitAutolinkEmail,
		micromark.TypeAutolinkProtocol:                    onExitAutolinkProtocol,
		micromark.TypeBlockQuote:                          closer(),
		micromark.TypeCharacterEscapeValue:                onExitData,
		micromark.TypeCharacterReferenceMarkerHexadecimal: onExitCharacterReferenceMarker,
		micromark.TypeCharacterReferenceMarkerNumeric:     onExitCharacterReferenceMarker,
		micromark.TypeCharacterReferenceValue:             onExitCharacterReferenceValue,
		micromark.TypeCharacterReference:                  onExitCharacterReference,
		micromark.TypeCodeFenced:                          closer(onExitCodeFenced),
		micromark.TypeCodeFencedFence:                     onExitCodeFencedFence,
		micromark.TypeCodeFencedFenceInfo:                 onExitCodeFencedFenceInfo,
		micromark.TypeCodeFencedFenceMeta:                 onExitCodeFencedFenceMeta,
		micromark.TypeCodeFlowValue:                       onExitData,
		micromark.TypeCodeIndented:                        closer(onExitCodeIndented),
		micromark.TypeCodeText:                            closer(onExitResumeValue),
		micromark.TypeCodeTextData:                        onExitData,
		micromark.TypeData:                                onExitData,
		micromark.TypeDefinition:                          closer(),
		micromark.TypeDefinitionDestinationString:         onExitDefinitionDestinationString,
		micromark.TypeDefinitionLabelString:               onExitDefinitionLabelString,
		micromark.TypeDefinitionTitleString:               onExitDefinitionTitleString,
		micromark.TypeEmphasis:                            closer(),
		micromark.TypeHardBreakEscape:                     closer(onExitHardBreak),
		micromark.TypeHardBreakTrailing:                   closer(onExitHardBreak),
		micromark.TypeHTMLFlow:                            closer(onExitResumeValue),
		micromark.TypeHTMLFlowData:                        onExitData,
		micromark.TypeHTMLText:                            closer(onExitResumeValue),
		micromark.TypeHTMLTextData:                        onExitData,
		micromark.TypeImage:                               closer(onExitMedia),
		micromark.TypeLabel:                               onExitLabel,
		micromark.TypeLabelText:                           onExitLabelText,
		micromark.TypeLineEnding:                          onExitLineEnding,
		micromark.TypeLink:                                closer(onExitMedia),
		micromark.TypeListItem:                            closer(),
		micromark.TypeListOrdered:                         closer(),
		micromark.TypeListUnordered:                       closer(),
		micromark.TypeParagraph:                           closer(),
		micromark.TypeReferenceString:                     onExitReferenceString,
		micromark.TypeResourceDestinationString:           onExitResourceDestinationString,
		micromark.TypeResourceTitleString:                 onExitResourceTitleString,
		micromark.TypeResource:                            onExitResource,
		micromark.TypeSetextHeading:                       closer(onExitSetextHeading),
		micromark.TypeSetextHeadingLineSequence:           onExitSetextHeadingLineSequence,
		micromark.TypeSetextHeadingText:                   onExitSetextHeadingText,
		micromark.TypeSpoiler:                             closer(),
		micromark.TypeStrong:                              closer(),
		micromark.TypeStrikethrough:                       closer(),
		micromark.TypeUnderline:                           closer(),
		micromark.TypeThematicBreak:                       closer(),
	}
}

func newList(tok *micromark.Token) *mdast.Node {
	n := mdast.NewNode(mdast.NodeList)
	n.Ordered = tok.Type == micromark.TypeListOrdered
	n.Spread = tok.Spread
	return n
}

func newListItem(tok *micromark.Token) *mdast.Node {
	n := mdast.NewNode(mdast.NodeListItem)
	n.Spread = tok.Spread
	return n
}

// expect returns the current node, which must be one of kinds.
func (c *Context) expect(kinds ...mdast.NodeKind) *mdast.Node {
	n := c.Current()
	for _, kind := range kinds {
		if n.Kind == kind && !c.inFragment() {
			return n
		}
	}
	panic(&micromark.InvariantError{Message: "expected " + kinds[0].String() + " on stack, found " + n.Kind.String()})
}

func onEnterListOrdered(c *Context, _ *micromark.Token) {
	c.expectingFirstListItemValue = true
}

func onEnterListItemValue(c *Context, tok *micromark.Token) {
	if !c.expectingFirstListItemValue {
		return
	}
	list := c.parent()
	if list == nil || list.Kind != mdast.NodeList {
		panic(&micromark.InvariantError{Message: "expected list on stack", TokenType: tok.Type, Point: tok.Start})
	}
	// The value is at most ten digits, so it fits.
	start, err := strconv.Atoi(c.SliceSerialize(tok))
	if err == nil {
		list.Start = &start
	}
	c.expectingFirstListItemValue = false
}

func onExitCodeFencedFenceInfo(c *Context, _ *micromark.Token) {
	data := c.Resume()
	c.expect(mdast.NodeCode).Lang = data
}

func onExitCodeFencedFenceMeta(c *Context, _ *micromark.Token) {
	data := c.Resume()
	c.expect(mdast.NodeCode).Meta = data
}

func onExitCodeFencedFence(c *Context, _ *micromark.Token) {
	// The closing fence ends nothing here.
	if c.flowCodeInside {
		return
	}
	c.Buffer()
	c.flowCodeInside = true
}

func onExitCodeFenced(c *Context, _ *micromark.Token) {
	data := c.Resume()
	c.expect(mdast.NodeCode).Value = trimLineEnding(trimLeadingLineEnding(data))
	c.flowCodeInside = false
}

func onExitCodeIndented(c *Context, _ *micromark.Token) {
	data := c.Resume()
	c.expect(mdast.NodeCode).Value = trimLineEnding(data)
}

// onExitResumeValue stores the buffered text of html and inline code.
func onExitResumeValue(c *Context, _ *micromark.Token) {
	data := c.Resume()
	c.expect(mdast.NodeHTML, mdast.NodeInlineCode).Value = data
}

func onExitDefinitionLabelString(c *Context, tok *micromark.Token) {
	label := c.Resume()
	n := c.expect(mdast.NodeDefinition)
	n.Label = label
	n.Identifier = micromark.NormalizeIdentifier(c.SliceSerialize(tok))
}

func onExitDefinitionTitleString(c *Context, _ *micromark.Token) {
	data := c.Resume()
	c.expect(mdast.NodeDefinition).Title = data
}

func onExitDefinitionDestinationString(c *Context, _ *micromark.Token) {
	data := c.Resume()
	c.expect(mdast.NodeDefinition).URL = data
}

func onExitATXHeadingSequence(c *Context, tok *micromark.Token) {
	n := c.expect(mdast.NodeHeading)
	if n.Depth != 0 {
		return
	}
	depth := len(c.SliceSerialize(tok))
	if depth < 1 || depth > 6 {
		panic(&micromark.InvariantError{Message: "expected depth between 1 and 6", TokenType: tok.Type, Point: tok.Start})
	}
	n.Depth = depth
}

func onExitSetextHeadingText(c *Context, _ *micromark.Token) {
	c.setextHeadingSlurpLineEnding = true
}

func onExitSetextHeadingLineSequence(c *Context, tok *micromark.Token) {
	n := c.expect(mdast.NodeHeading)
	n.Depth = 2
	if strings.HasPrefix(c.SliceSerialize(tok), "=") {
		n.Depth = 1
	}
}

func onExitSetextHeading(c *Context, _ *micromark.Token) {
	c.setextHeadingSlurpLineEnding = false
}

// onEnterData opens a text node, reusing a directly preceding one.
func onEnterData(c *Context, tok *micromark.Token) {
	parent := c.Current()
	tail := parent.LastChild
	if tail == nil || tail.Kind != mdast.NodeText {
		tail = mdast.NewText("")
		tail.Position.Start = point(tok.Start)
		mdast.AppendChild(parent, tail)
	}
	c.stack = append(c.stack, frame{node: tail})
}

func onExitData(c *Context, tok *micromark.Token) {
	tail := c.expect(mdast.NodeText)
	c.stack = c.stack[:len(c.stack)-1]
	tail.Value += c.SliceSerialize(tok)
	tail.Position.End = point(tok.End)
}

func onExitLineEnding(c *Context, tok *micromark.Token) {
	current := c.Current()

	// A line ending after a hard break belongs to the break.
	if c.atHardBreak {
		if tail := current.LastChild; tail != nil {
			tail.Position.End = point(tok.End)
		}
		c.atHardBreak = false
		return
	}

	if !c.setextHeadingSlurpLineEnding && (c.inFragment() || c.compiler.canContainEol(current.Kind)) {
		onEnterData(c, tok)
		onExitData(c, tok)
	}
}

func onExitHardBreak(c *Context, _ *micromark.Token) {
	c.atHardBreak = true
}

// onExitMedia turns a link or image into a reference when its label was
// not followed by a resource.
func onExitMedia(c *Context, _ *micromark.Token) {
	n := c.expect(mdast.NodeLink, mdast.NodeImage)
	if c.inReference {
		if n.Kind == mdast.NodeLink {
			n.Kind = mdast.NodeLinkReference
		} else {
			n.Kind = mdast.NodeImageReference
		}
		n.ReferenceType = c.referenceType
		if n.ReferenceType == mdast.ReferenceNone {
			n.ReferenceType = mdast.ReferenceShortcut
		}
		n.URL = ""
		n.Title = ""
	} else {
		n.Identifier = ""
		n.Label = ""
	}
	c.referenceType = mdast.ReferenceNone
}

func onExitLabelText(c *Context, tok *micromark.Token) {
	value := c.SliceSerialize(tok)
	ancestor := c.parent()
	if ancestor == nil || (ancestor.Kind != mdast.NodeLink && ancestor.Kind != mdast.NodeImage) {
		panic(&micromark.InvariantError{Message: "expected image or link on stack", TokenType: tok.Type, Point: tok.Start})
	}
	// Stashed in case the link turns out to be a reference.
	ancestor.Label = micromark.DecodeString(value)
	ancestor.Identifier = micromark.NormalizeIdentifier(value)
}

func onExitLabel(c *Context, _ *micromark.Token) {
	fragment := c.resumeFragment()
	n := c.expect(mdast.NodeLink, mdast.NodeImage)

	// Assume a reference until a resource says otherwise.
	c.inReference = true

	if n.Kind == mdast.NodeLink {
		for _, child := range fragment.Children() {
			mdast.AppendChild(n, child)
		}
		return
	}
	n.Alt = toString(fragment)
}

func onExitResourceDestinationString(c *Context, _ *micromark.Token) {
	data := c.Resume()
	c.expect(mdast.NodeLink, mdast.NodeImage).URL = data
}

func onExitResourceTitleString(c *Context, _ *micromark.Token) {
	data := c.Resume()
	c.expect(mdast.NodeLink, mdast.NodeImage).Title = data
}

func onExitResource(c *Context, _ *micromark.Token) {
	c.inReference = false
}

func onEnterReference(c *Context, _ *micromark.Token) {
	c.referenceType = mdast.ReferenceCollapsed
}

func onExitReferenceString(c *Context, tok *micromark.Token) {
	label := c.Resume()
	n := c.expect(mdast.NodeLink, mdast.NodeImage)
	n.Label = label
	n.Identifier = micromark.NormalizeIdentifier(c.SliceSerialize(tok))
	c.referenceType = mdast.ReferenceFull
}

func onExitCharacterReferenceMarker(c *Context, tok *micromark.Token) {
	c.characterReferenceType = tok.Type
}

func onExitCharacterReferenceValue(c *Context, tok *micromark.Token) {
	data := c.SliceSerialize(tok)
	var value string

	switch c.characterReferenceType {
	case micromark.TypeCharacterReferenceMarkerNumeric:
		value = micromark.DecodeNumericCharacterReference(data, 10)
	case micromark.TypeCharacterReferenceMarkerHexadecimal:
		value = micromark.DecodeNumericCharacterReference(data, 16)
	default:
		decoded, ok := micromark.DecodeNamedCharacterReference(data)
		if !ok {
			// Keep the source when the name is unknown.
			decoded = "&" + data + ";"
			if c.compiler.logger != nil {
				c.compiler.logger.Debug("undecodable character reference", "name", data, "line", tok.Start.Line)
			}
		}
		value = decoded
	}
	c.characterReferenceType = ""

	c.expect(mdast.NodeText).Value += value
}

func onExitCharacterReference(c *Context, tok *micromark.Token) {
	tail := c.expect(mdast.NodeText)
	c.stack = c.stack[:len(c.stack)-1]
	tail.Position.End = point(tok.End)
}

func onExitAutolinkProtocol(c *Context, tok *micromark.Token) {
	onExitData(c, tok)
	c.expect(mdast.NodeLink).URL = c.SliceSerialize(tok)
}

func onExitAutolinkEmail(c *Context, tok *micromark.Token) {
	onExitData(c, tok)
	c.expect(mdast.NodeLink).URL = "mailto:" + c.SliceSerialize(tok)
}

func trimLeadingLineEnding(s string) string {
	switch {
	case strings.HasPrefix(s, "\r\n"):
		return s[2:]
	case strings.HasPrefix(s, "\n"), strings.HasPrefix(s, "\r"):
		return s[1:]
	default:
		return s
	}
}

func trimLineEnding(s string) string {
	switch {
	case strings.HasSuffix(s, "\r\n"):
		return s[:len(s)-2]
	case strings.HasSuffix(s, "\n"), strings.HasSuffix(s, "\r"):
		return s[:len(s)-1]
	default:
		return s
	}
}

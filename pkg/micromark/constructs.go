package micromark

import "slices"

// defaultConstructs is the CommonMark grammar.
func defaultConstructs() Extension {
	lists := ConstructList{list}
	document := ConstructMap{
		'*': lists,
		'+': lists,
		'-': lists,
		'>': {blockQuote},
	}
	for code := Code('0'); code <= '9'; code++ {
		document[code] = lists
	}

	return Extension{
		Document: document,
		ContentInitial: ConstructMap{
			'[': {definition},
		},
		FlowInitial: ConstructMap{
			CodeHorizontalTab: {codeIndented},
			CodeVirtualSpace:  {codeIndented},
			' ':               {codeIndented},
		},
		Flow: ConstructMap{
			'#': {headingAtx},
			'*': {thematicBreak},
			'-': {setextUnderline, thematicBreak},
			'<': {htmlFlow},
			'=': {setextUnderline},
			'_': {thematicBreak},
			'`': {codeFenced},
			'~': {codeFenced},
		},
		String: ConstructMap{
			'&':  {characterReference},
			'\\': {characterEscape},
		},
		Text: ConstructMap{
			CodeCarriageReturn:         {lineEnding},
			CodeLineFeed:               {lineEnding},
			CodeCarriageReturnLineFeed: {lineEnding},
			'!':                        {labelStartImage},
			'&':                        {characterReference},
			'*':                        {attention},
			'<':                        {autolink, htmlText},
			'[':                        {labelStartLink},
			'\\':                       {hardBreakEscape, characterEscape},
			']':                        {labelEnd},
			'_':                        {attention},
			'`':                        {codeText},
		},
		InsideSpan:       []*Resolver{resolveAttentionAll, resolveText},
		AttentionMarkers: []Code{'*'},
	}
}

// ConstructNames lists the names of the built-in constructs and those of
// exts, sorted. These are the names accepted by Extension.Disable.
func ConstructNames(exts ...Extension) []string {
	seen := map[string]bool{}
	collect := func(m ConstructMap) {
		for _, list := range m {
			for _, c := range list {
				seen[c.Name] = true
			}
		}
	}
	for _, ext := range append([]Extension{defaultConstructs()}, exts...) {
		collect(ext.Document)
		collect(ext.ContentInitial)
		collect(ext.FlowInitial)
		collect(ext.Flow)
		collect(ext.String)
		collect(ext.Text)
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

package micromark

import "slices"

// TokenizeFunc starts a construct. It returns the state that receives the
// construct's first code; the construct ends by returning ok or nok.
type TokenizeFunc func(t *Tokenizer, effects *Effects, ok, nok State) State

// ResolveFunc rewrites events after a construct matched.
type ResolveFunc func(events []Event, t *Tokenizer) []Event

// Resolver is a whole-stream rewrite that runs once per tokenizer when the
// input ends. Resolvers are compared by identity, so constructs that share
// one share the pointer.
type Resolver struct {
	Name    string
	Resolve ResolveFunc
}

// Construct is a named state machine recognizing one grammar rule.
type Construct struct {
	Name     string
	Tokenize TokenizeFunc

	// Resolve rewrites the events the construct just added.
	Resolve ResolveFunc
	// ResolveTo rewrites all events up to and including the construct's.
	ResolveTo ResolveFunc
	// ResolveAll runs over the whole stream at the end of input.
	ResolveAll *Resolver

	// Previous guards the construct on the code before its first code.
	Previous func(t *Tokenizer, code Code) bool

	// Continuation and Exit are used by containers.
	Continuation *Construct
	Exit         func(t *Tokenizer, effects *Effects)

	// Partial constructs are helpers that never become the current construct.
	Partial bool
	// Concrete constructs cannot be pierced by containers while open.
	Concrete bool
	// AddAfter places an extension construct after the built-in ones
	// instead of before them.
	AddAfter bool
}

// Constructs is anything an attempt can try: a single construct, an
// ordered list, or a map keyed by leading code.
type Constructs interface {
	candidates(code Code) []*Construct
}

func (c *Construct) candidates(Code) []*Construct {
	return []*Construct{c}
}

// ConstructList is an ordered list of candidate constructs.
type ConstructList []*Construct

func (l ConstructList) candidates(Code) []*Construct {
	return l
}

// ConstructMap maps a leading code to its candidates, tried in order.
// Constructs under CodeAny are tried after the code-specific ones.
type ConstructMap map[Code]ConstructList

func (m ConstructMap) candidates(code Code) []*Construct {
	if code == CodeEOF {
		return nil
	}
	left := m[code]
	all := m[CodeAny]
	if len(all) == 0 {
		return left
	}
	return append(slices.Clone(left), all...)
}

// Extension is a set of construct tables. The built-in grammar is itself an
// extension; parsers merge the built-ins with user extensions once.
type Extension struct {
	Document       ConstructMap
	ContentInitial ConstructMap
	FlowInitial    ConstructMap
	Flow           ConstructMap
	String         ConstructMap
	Text           ConstructMap

	// InsideSpan resolvers run over the content of a matched span.
	InsideSpan []*Resolver
	// AttentionMarkers always count as flanking for emphasis.
	AttentionMarkers []Code
	// Disable lists construct names that never match.
	Disable []string
}

// combineExtensions merges extensions left to right. Constructs of later
// extensions go before earlier ones unless they set AddAfter.
func combineExtensions(exts []Extension) Extension {
	var all Extension
	for _, ext := range exts {
		all.Document = mergeMap(all.Document, ext.Document)
		all.ContentInitial = mergeMap(all.ContentInitial, ext.ContentInitial)
		all.FlowInitial = mergeMap(all.FlowInitial, ext.FlowInitial)
		all.Flow = mergeMap(all.Flow, ext.Flow)
		all.String = mergeMap(all.String, ext.String)
		all.Text = mergeMap(all.Text, ext.Text)
		all.InsideSpan = append(slices.Clone(ext.InsideSpan), all.InsideSpan...)
		all.AttentionMarkers = append(slices.Clone(ext.AttentionMarkers), all.AttentionMarkers...)
		all.Disable = append(slices.Clone(ext.Disable), all.Disable...)
	}
	return all
}

func mergeMap(existing, right ConstructMap) ConstructMap {
	merged := ConstructMap{}
	for code, list := range existing {
		merged[code] = list
	}
	for code, list := range right {
		var before, after ConstructList
		for _, c := range list {
			if c.AddAfter {
				after = append(after, c)
			} else {
				before = append(before, c)
			}
		}
		combined := append(before, merged[code]...)
		merged[code] = append(combined, after...)
	}
	return merged
}

func containsResolver(list []*Resolver, r *Resolver) bool {
	return slices.Contains(list, r)
}

// resolveAll runs each distinct resolver once, in order.
func resolveAll(resolvers []*Resolver, events []Event, t *Tokenizer) []Event {
	var called []*Resolver
	for _, r := range resolvers {
		if r == nil || r.Resolve == nil || slices.Contains(called, r) {
			continue
		}
		events = r.Resolve(events, t)
		called = append(called, r)
	}
	return events
}

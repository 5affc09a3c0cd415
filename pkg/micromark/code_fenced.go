package micromark

var (
	codeFenced          = &Construct{Name: "codeFenced", Concrete: true}
	nonLazyContinuation = &Construct{Partial: true}
)

func init() {
	codeFenced.Tokenize = tokenizeCodeFenced
	nonLazyContinuation.Tokenize = tokenizeNonLazyContinuation
}

// fencedCode tokenizes a fenced code block from its opening fence to its
// closing fence, the end of its container or the end of input.
type fencedCode struct {
	t       *Tokenizer
	effects *Effects
	ok, nok State

	closeStart    *Construct
	initialPrefix int
	sizeOpen      int
	marker        Code
}

func tokenizeCodeFenced(t *Tokenizer, effects *Effects, ok, nok State) State {
	f := &fencedCode{t: t, effects: effects, ok: ok, nok: nok}
	f.closeStart = &Construct{Partial: true, Tokenize: f.tokenizeCloseStart}
	return f.start
}

func (f *fencedCode) start(code Code) State {
	invariant(code == '`' || code == '~', "expected `` ` `` or `~`")
	if n := len(f.t.events); n > 0 && f.t.events[n-1].Token.Type == TypeLinePrefix {
		tail := f.t.events[n-1]
		f.initialPrefix = len(tail.Context.SliceSerialize(tail.Token, true))
	}
	f.marker = code
	f.effects.Enter(TypeCodeFenced)
	f.effects.Enter(TypeCodeFencedFence)
	f.effects.Enter(TypeCodeFencedFenceSequence)
	return f.sequenceOpen(code)
}

func (f *fencedCode) sequenceOpen(code Code) State {
	if code == f.marker {
		f.sizeOpen++
		f.effects.Consume(code)
		return f.sequenceOpen
	}
	if f.sizeOpen < codeFencedSequenceMin {
		return f.nok(code)
	}
	f.effects.Exit(TypeCodeFencedFenceSequence)
	if markdownSpace(code) {
		return factorySpace(f.effects, f.infoBefore, TypeWhitespace, 0)(code)
	}
	return f.infoBefore(code)
}

func (f *fencedCode) infoBefore(code Code) State {
	if code == CodeEOF || markdownLineEnding(code) {
		f.effects.Exit(TypeCodeFencedFence)
		if f.t.interrupt {
			return f.ok(code)
		}
		return f.effects.Check(nonLazyContinuation, f.atNonLazyBreak, f.after)(code)
	}
	f.effects.Enter(TypeCodeFencedFenceInfo)
	tok := f.effects.Enter(TypeChunkString)
	tok.ContentType = ContentTypeString
	return f.info(code)
}

func (f *fencedCode) info(code Code) State {
	if code == CodeEOF || markdownLineEnding(code) {
		f.effects.Exit(TypeChunkString)
		f.effects.Exit(TypeCodeFencedFenceInfo)
		return f.infoBefore(code)
	}
	if markdownSpace(code) {
		f.effects.Exit(TypeChunkString)
		f.effects.Exit(TypeCodeFencedFenceInfo)
		return factorySpace(f.effects, f.metaBefore, TypeWhitespace, 0)(code)
	}
	if code == '`' && code == f.marker {
		return f.nok(code)
	}
	f.effects.Consume(code)
	return f.info
}

func (f *fencedCode) metaBefore(code Code) State {
	if code == CodeEOF || markdownLineEnding(code) {
		return f.infoBefore(code)
	}
	f.effects.Enter(TypeCodeFencedFenceMeta)
	tok := f.effects.Enter(TypeChunkString)
	tok.ContentType = ContentTypeString
	return f.meta(code)
}

func (f *fencedCode) meta(code Code) State {
	if code == CodeEOF || markdownLineEnding(code) {
		f.effects.Exit(TypeChunkString)
		f.effects.Exit(TypeCodeFencedFenceMeta)
		return f.infoBefore(code)
	}
	if code == '`' && code == f.marker {
		return f.nok(code)
	}
	f.effects.Consume(code)
	return f.meta
}

func (f *fencedCode) atNonLazyBreak(code Code) State {
	invariant(markdownLineEnding(code), "expected eol")
	return f.effects.Attempt(f.closeStart, f.after, f.contentBefore)(code)
}

func (f *fencedCode) contentBefore(code Code) State {
	invariant(markdownLineEnding(code), "expected eol")
	f.effects.Enter(TypeLineEnding)
	f.effects.Consume(code)
	f.effects.Exit(TypeLineEnding)
	return f.contentStart
}

func (f *fencedCode) contentStart(code Code) State {
	if f.initialPrefix > 0 && markdownSpace(code) {
		return factorySpace(f.effects, f.beforeContentChunk, TypeLinePrefix, f.initialPrefix+1)(code)
	}
	return f.beforeContentChunk(code)
}

func (f *fencedCode) beforeContentChunk(code Code) State {
	if code == CodeEOF || markdownLineEnding(code) {
		return f.effects.Check(nonLazyContinuation, f.atNonLazyBreak, f.after)(code)
	}
	f.effects.Enter(TypeCodeFlowValue)
	return f.contentChunk(code)
}

func (f *fencedCode) contentChunk(code Code) State {
	if code == CodeEOF || markdownLineEnding(code) {
		f.effects.Exit(TypeCodeFlowValue)
		return f.beforeContentChunk(code)
	}
	f.effects.Consume(code)
	return f.contentChunk
}

func (f *fencedCode) after(code Code) State {
	f.effects.Exit(TypeCodeFenced)
	return f.ok(code)
}

// closingFence matches a closing fence at least as long as the opening one.
type closingFence struct {
	f       *fencedCode
	effects *Effects
	ok, nok State
	size    int
}

func (f *fencedCode) tokenizeCloseStart(_ *Tokenizer, effects *Effects, ok, nok State) State {
	c := &closingFence{f: f, effects: effects, ok: ok, nok: nok}
	return c.startBefore
}

func (c *closingFence) startBefore(code Code) State {
	invariant(markdownLineEnding(code), "expected eol")
	c.effects.Enter(TypeLineEnding)
	c.effects.Consume(code)
	c.effects.Exit(TypeLineEnding)
	return c.start
}

func (c *closingFence) start(code Code) State {
	c.effects.Enter(TypeCodeFencedFence)
	if markdownSpace(code) {
		return factorySpace(c.effects, c.beforeSequence, TypeLinePrefix, c.f.t.tabSizeLimit())(code)
	}
	return c.beforeSequence(code)
}

func (c *closingFence) beforeSequence(code Code) State {
	if code == c.f.marker {
		c.effects.Enter(TypeCodeFencedFenceSequence)
		return c.sequence(code)
	}
	return c.nok(code)
}

func (c *closingFence) sequence(code Code) State {
	if code == c.f.marker {
		c.size++
		c.effects.Consume(code)
		return c.sequence
	}
	if c.size < c.f.sizeOpen {
		return c.nok(code)
	}
	c.effects.Exit(TypeCodeFencedFenceSequence)
	if markdownSpace(code) {
		return factorySpace(c.effects, c.sequenceAfter, TypeWhitespace, 0)(code)
	}
	return c.sequenceAfter(code)
}

func (c *closingFence) sequenceAfter(code Code) State {
	if code == CodeEOF || markdownLineEnding(code) {
		c.effects.Exit(TypeCodeFencedFence)
		return c.ok(code)
	}
	return c.nok(code)
}

// tokenizeNonLazyContinuation succeeds when the next line is not a lazy
// continuation line.
func tokenizeNonLazyContinuation(t *Tokenizer, effects *Effects, ok, nok State) State {
	lineStart := func(code Code) State {
		if t.session.lazy[t.point.Line] {
			return nok(code)
		}
		return ok(code)
	}
	return func(code Code) State {
		if code == CodeEOF {
			return nok(code)
		}
		invariant(markdownLineEnding(code), "expected eol")
		effects.Enter(TypeLineEnding)
		effects.Consume(code)
		effects.Exit(TypeLineEnding)
		return lineStart
	}
}

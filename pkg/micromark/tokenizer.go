package micromark

import (
	"strings"
	"unicode/utf8"
)

// ContainerState is the per-container record kept by block quotes and
// list items while they stay open across lines.
type ContainerState struct {
	Kind              TokenType
	Marker            Code
	Size              int
	InitialBlankLine  bool
	FurtherBlankLines bool
	Open              bool

	closeFlow bool
}

// Initializer is the entry state machine of a tokenizer.
type Initializer struct {
	Tokenize   func(t *Tokenizer, effects *Effects) State
	ResolveAll *Resolver
}

// skip records where consumed container prefixes end on a line.
type skip struct {
	column int
	offset int
}

// Tokenizer runs one initializer over a stream of chunks and records
// events. Each tokenizer owns its chunks, position and event buffer.
type Tokenizer struct {
	events []Event

	// previous is the code consumed last.
	previous Code

	containerState   *ContainerState
	currentConstruct *Construct
	interrupt        bool

	session   *session
	initial   *Initializer
	effects   *Effects
	point     Point
	chunks    []Chunk
	stack     []*Token
	skips     map[int]skip
	resolvers []*Resolver
	state     State

	expectedCode Code
	consumed     bool

	labelStarts []labelStartRef
}

func newTokenizer(s *session, initial *Initializer, from *Point) *Tokenizer {
	t := &Tokenizer{
		previous:       CodeEOF,
		containerState: &ContainerState{},
		session:        s,
		initial:        initial,
		point:          Point{Line: 1, Column: 1, bufferIndex: -1},
		skips:          map[int]skip{},
		consumed:       true,
	}
	if from != nil {
		t.point.Line = from.Line
		t.point.Column = from.Column
		t.point.Offset = from.Offset
	}
	t.effects = &Effects{t: t}
	t.state = initial.Tokenize(t, t.effects)
	if initial.ResolveAll != nil {
		t.resolvers = append(t.resolvers, initial.ResolveAll)
	}
	return t
}

// Events returns the events recorded so far.
func (t *Tokenizer) Events() []Event {
	return t.events
}

// Write feeds chunks to the tokenizer. Until a chunk with CodeEOF has been
// written it returns nil; after that it returns the resolved events.
func (t *Tokenizer) Write(slice []Chunk) []Event {
	t.chunks = append(t.chunks, slice...)
	t.main()

	if last := len(t.chunks) - 1; last < 0 || t.chunks[last].IsText() || t.chunks[last].Code != CodeEOF {
		return nil
	}

	invariant(len(t.events) == 0 || t.events[len(t.events)-1].Kind == EventExit,
		"expected last token to end")
	if len(t.stack) > 0 {
		open := t.stack[len(t.stack)-1]
		panic(&InvariantError{Message: "token still open at end of input", TokenType: open.Type, Point: open.Start})
	}

	t.events = resolveAll(t.resolvers, t.events, t)
	return t.events
}

// Now returns the current point.
func (t *Tokenizer) Now() Point {
	return t.point
}

// Previous returns the code consumed last.
func (t *Tokenizer) Previous() Code {
	return t.previous
}

// Interrupting reports whether the running construct was started to
// interrupt content.
func (t *Tokenizer) Interrupting() bool {
	return t.interrupt
}

// ContainerState returns the state of the container being tokenized.
func (t *Tokenizer) ContainerState() *ContainerState {
	return t.containerState
}

// Lazy reports whether line is a lazy continuation line.
func (t *Tokenizer) Lazy(line int) bool {
	return t.session.lazy[line]
}

// defineSkip records that line starts at point once container prefixes
// have been consumed.
func (t *Tokenizer) defineSkip(p Point) {
	t.skips[p.Line] = skip{column: p.Column, offset: p.Offset - p.Column + 1}
	t.accountForPotentialSkip()
}

func (t *Tokenizer) accountForPotentialSkip() {
	if s, ok := t.skips[t.point.Line]; ok && t.point.Column < 2 {
		t.point.Column = s.column
		t.point.Offset = s.offset + s.column - 1
	}
}

func (t *Tokenizer) main() {
	for t.point.index < len(t.chunks) {
		chunk := t.chunks[t.point.index]
		if !chunk.IsText() {
			t.step(chunk.Code)
			continue
		}

		chunkIndex := t.point.index
		if t.point.bufferIndex < 0 {
			t.point.bufferIndex = 0
		}
		for t.point.index == chunkIndex && t.point.bufferIndex < len(chunk.Text) {
			r, _ := utf8.DecodeRuneInString(chunk.Text[t.point.bufferIndex:])
			t.step(Code(r))
		}
	}
}

// invariantHere is invariant for checks made while a state runs. The error
// names the innermost open token and the current point.
func (t *Tokenizer) invariantHere(cond bool, msg string) {
	if cond {
		return
	}
	err := &InvariantError{Message: msg, Point: t.point}
	if n := len(t.stack); n > 0 {
		err.TokenType = t.stack[n-1].Type
	}
	panic(err)
}

func (t *Tokenizer) step(code Code) {
	t.invariantHere(t.consumed, "expected character to be consumed")
	t.consumed = false
	t.expectedCode = code
	t.invariantHere(t.state != nil, "expected state")
	t.state = t.state(code)
}

func (t *Tokenizer) consume(code Code) {
	t.invariantHere(code == t.expectedCode, "expected given code to equal expected code")
	t.invariantHere(!t.consumed, "expected code to not have been consumed")
	if code == CodeEOF {
		t.invariantHere(len(t.events) == 0 || t.events[len(t.events)-1].Kind == EventExit,
			"expected last token to be closed at end of input")
	} else {
		t.invariantHere(len(t.events) > 0 && t.events[len(t.events)-1].Kind == EventEnter,
			"expected last token to be open")
	}

	width := 1
	switch {
	case markdownLineEnding(code):
		t.point.Line++
		t.point.Column = 1
		if code == CodeCarriageReturnLineFeed {
			t.point.Offset += 2
		} else {
			t.point.Offset++
		}
		t.accountForPotentialSkip()
	case code == CodeVirtualSpace, code == CodeEOF:
	case t.point.bufferIndex >= 0:
		_, width = utf8.DecodeRuneInString(t.chunks[t.point.index].Text[t.point.bufferIndex:])
		t.point.Column++
		t.point.Offset += width
	default:
		t.point.Column++
		t.point.Offset++
	}

	if t.point.bufferIndex < 0 {
		t.point.index++
	} else {
		t.point.bufferIndex += width
		if t.point.bufferIndex == len(t.chunks[t.point.index].Text) {
			t.point.bufferIndex = -1
			t.point.index++
		}
	}

	t.previous = code
	t.consumed = true
}

func (t *Tokenizer) enter(typ TokenType) *Token {
	invariant(typ != "", "expected non-empty token type")
	tok := &Token{Type: typ, Start: t.point}
	t.events = append(t.events, Event{Kind: EventEnter, Token: tok, Context: t})
	t.stack = append(t.stack, tok)
	return tok
}

func (t *Tokenizer) exit(typ TokenType) *Token {
	invariant(typ != "", "expected non-empty token type")
	if len(t.stack) == 0 {
		panic(&InvariantError{Message: "cannot close without open tokens", TokenType: typ, Point: t.point})
	}
	tok := t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]
	tok.End = t.point
	if typ != tok.Type {
		panic(&InvariantError{Message: "expected exit token to match current token `" + string(typ) + "`", TokenType: tok.Type, Point: tok.Start})
	}
	invariantToken(!(tok.Start.index == tok.End.index && tok.Start.bufferIndex == tok.End.bufferIndex),
		"expected non-empty token", tok)
	t.events = append(t.events, Event{Kind: EventExit, Token: tok, Context: t})
	return tok
}

// snapshot is the state saved before a construct is tried.
type snapshot struct {
	point            Point
	previous         Code
	currentConstruct *Construct
	eventsLen        int
	stack            []*Token
}

func (t *Tokenizer) store() snapshot {
	return snapshot{
		point:            t.point,
		previous:         t.previous,
		currentConstruct: t.currentConstruct,
		eventsLen:        len(t.events),
		stack:            append([]*Token(nil), t.stack...),
	}
}

func (t *Tokenizer) restore(s snapshot) {
	t.point = s.point
	t.previous = s.previous
	t.currentConstruct = s.currentConstruct
	t.events = t.events[:s.eventsLen]
	t.stack = s.stack
	t.accountForPotentialSkip()
}

func (t *Tokenizer) addResult(c *Construct, from int) {
	if c.ResolveAll != nil && !containsResolver(t.resolvers, c.ResolveAll) {
		t.resolvers = append(t.resolvers, c.ResolveAll)
	}

	if c.Resolve != nil {
		tail := append([]Event(nil), t.events[from:]...)
		t.events = append(t.events[:from], c.Resolve(tail, t)...)
	}

	if c.ResolveTo != nil {
		t.events = c.ResolveTo(t.events, t)
	}

	invariant(c.Partial || len(t.events) == 0 || t.events[len(t.events)-1].Kind == EventExit,
		"expected last token to end")
}

// SliceStream returns the chunks covered by tok.
func (t *Tokenizer) SliceStream(tok *Token) []Chunk {
	return t.sliceChunks(tok.Start, tok.End)
}

// SliceSerialize returns the source text covered by tok. With expandTabs,
// tabs are written as the spaces they expand to.
func (t *Tokenizer) SliceSerialize(tok *Token, expandTabs bool) string {
	return serializeChunks(t.sliceChunks(tok.Start, tok.End), expandTabs)
}

func (t *Tokenizer) sliceSerializeRange(start, end Point) string {
	return serializeChunks(t.sliceChunks(start, end), false)
}

func (t *Tokenizer) sliceChunks(start, end Point) []Chunk {
	if start.index == end.index {
		invariant(start.bufferIndex > -1 && end.bufferIndex > -1, "expected non-negative buffer indices")
		return []Chunk{{Text: t.chunks[start.index].Text[start.bufferIndex:end.bufferIndex]}}
	}

	view := append([]Chunk(nil), t.chunks[start.index:end.index]...)
	if start.bufferIndex > -1 {
		head := view[0]
		if head.IsText() {
			view[0] = Chunk{Text: head.Text[start.bufferIndex:]}
		} else {
			invariant(start.bufferIndex == 0, "expected start buffer index to be 0")
			view = view[1:]
		}
	}
	if end.bufferIndex > 0 {
		view = append(view, Chunk{Text: t.chunks[end.index].Text[:end.bufferIndex]})
	}
	return view
}

func serializeChunks(chunks []Chunk, expandTabs bool) string {
	var sb strings.Builder
	atTab := false
	for _, chunk := range chunks {
		if chunk.IsText() {
			sb.WriteString(chunk.Text)
			atTab = false
			continue
		}
		switch chunk.Code {
		case CodeCarriageReturn:
			sb.WriteByte('\r')
		case CodeLineFeed:
			sb.WriteByte('\n')
		case CodeCarriageReturnLineFeed:
			sb.WriteString("\r\n")
		case CodeHorizontalTab:
			if expandTabs {
				sb.WriteByte(' ')
			} else {
				sb.WriteByte('\t')
			}
		case CodeVirtualSpace:
			if !expandTabs && atTab {
				continue
			}
			sb.WriteByte(' ')
		case CodeEOF:
		default:
			sb.WriteRune(rune(chunk.Code))
		}
		atTab = chunk.Code == CodeHorizontalTab
	}
	return sb.String()
}

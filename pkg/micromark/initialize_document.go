package micromark

var (
	documentInitializer Initializer
	containerConstruct  = &Construct{}
)

func init() {
	documentInitializer.Tokenize = initializeDocument
	containerConstruct.Tokenize = tokenizeContainer
}

// containerEntry is an open container and its state.
type containerEntry struct {
	construct *Construct
	state     *ContainerState
}

// documentTokenizer drives containers line by line and feeds what is left
// of each line to a child flow tokenizer.
type documentTokenizer struct {
	t               *Tokenizer
	effects         *Effects
	stack           []containerEntry
	continued       int
	childFlow       *Tokenizer
	childToken      *Token
	lineStartOffset int
}

func initializeDocument(t *Tokenizer, effects *Effects) State {
	d := &documentTokenizer{t: t, effects: effects}
	return d.start
}

func (d *documentTokenizer) start(code Code) State {
	// First, try to continue every open container in order.
	if d.continued < len(d.stack) {
		item := d.stack[d.continued]
		d.t.containerState = item.state
		return d.effects.Attempt(item.construct.Continuation, d.documentContinue, d.checkNewContainers)(code)
	}
	return d.checkNewContainers(code)
}

func (d *documentTokenizer) documentContinue(code Code) State {
	d.continued++

	if !d.t.containerState.closeFlow {
		return d.start(code)
	}

	d.t.containerState.closeFlow = false
	if d.childFlow != nil {
		d.closeFlow()
	}

	indexBeforeExits := len(d.t.events)
	indexBeforeFlow := indexBeforeExits - 1
	var point Point
	for ; indexBeforeFlow >= 0; indexBeforeFlow-- {
		ev := d.t.events[indexBeforeFlow]
		if ev.Kind == EventExit && ev.Token.Type == TypeChunkFlow {
			point = ev.Token.End
			break
		}
	}

	d.exitContainers(d.continued)
	d.moveExits(indexBeforeExits, indexBeforeFlow, point)
	return d.checkNewContainers(code)
}

// moveExits moves the container exits added after indexBeforeExits to just
// after indexBeforeFlow, ending them at point.
func (d *documentTokenizer) moveExits(indexBeforeExits, indexBeforeFlow int, point Point) {
	end := len(d.t.events)
	for index := indexBeforeExits; index < end; index++ {
		d.t.events[index].Token.End = point
	}
	exits := append([]Event(nil), d.t.events[indexBeforeExits:]...)
	d.t.events = splice(d.t.events, indexBeforeFlow+1, 0, exits)
	d.t.events = d.t.events[:end]
}

func (d *documentTokenizer) checkNewContainers(code Code) State {
	if d.continued == len(d.stack) {
		if d.childFlow == nil {
			return d.documentContinued(code)
		}
		// Containers cannot pierce into concrete flow such as fenced code.
		if d.childFlow.currentConstruct != nil && d.childFlow.currentConstruct.Concrete {
			return d.flowStart(code)
		}
		d.t.interrupt = d.childFlow.currentConstruct != nil
	}

	d.t.containerState = &ContainerState{}
	return d.effects.Check(containerConstruct, d.thereIsANewContainer, d.thereIsNoNewContainer)(code)
}

func (d *documentTokenizer) thereIsANewContainer(code Code) State {
	if d.childFlow != nil {
		d.closeFlow()
	}
	d.exitContainers(d.continued)
	return d.documentContinued(code)
}

func (d *documentTokenizer) thereIsNoNewContainer(code Code) State {
	d.t.session.lazy[d.t.point.Line] = d.continued != len(d.stack)
	d.lineStartOffset = d.t.point.Offset
	return d.flowStart(code)
}

func (d *documentTokenizer) documentContinued(code Code) State {
	d.t.containerState = &ContainerState{}
	return d.effects.Attempt(containerConstruct, d.containerContinue, d.flowStart)(code)
}

func (d *documentTokenizer) containerContinue(code Code) State {
	invariant(d.t.currentConstruct != nil, "expected current construct to be defined")
	d.continued++
	d.stack = append(d.stack, containerEntry{construct: d.t.currentConstruct, state: d.t.containerState})
	return d.documentContinued(code)
}

func (d *documentTokenizer) flowStart(code Code) State {
	if code == CodeEOF {
		if d.childFlow != nil {
			d.closeFlow()
		}
		d.exitContainers(0)
		d.effects.Consume(code)
		return nil
	}

	if d.childFlow == nil {
		now := d.t.point
		d.childFlow = d.t.session.create(&flowInitializer, &now)
	}
	tok := d.effects.Enter(TypeChunkFlow)
	tok.tokenizer = d.childFlow
	tok.ContentType = ContentTypeFlow
	tok.Previous = d.childToken
	return d.flowContinue(code)
}

func (d *documentTokenizer) flowContinue(code Code) State {
	if code == CodeEOF {
		d.writeToChild(d.effects.Exit(TypeChunkFlow), true)
		d.exitContainers(0)
		d.effects.Consume(code)
		return nil
	}

	if markdownLineEnding(code) {
		d.effects.Consume(code)
		d.writeToChild(d.effects.Exit(TypeChunkFlow), false)
		d.continued = 0
		d.t.interrupt = false
		return d.start
	}

	d.effects.Consume(code)
	return d.flowContinue
}

func (d *documentTokenizer) writeToChild(tok *Token, endOfFile bool) {
	stream := d.t.SliceStream(tok)
	if endOfFile {
		stream = append(stream, Chunk{Code: CodeEOF})
	}
	tok.Previous = d.childToken
	if d.childToken != nil {
		d.childToken.Next = tok
	}
	d.childToken = tok
	d.childFlow.defineSkip(tok.Start)
	d.childFlow.Write(stream)

	if !d.t.session.lazy[tok.Start.Line] {
		return
	}

	// A lazy line that did not continue anything still open in the child
	// closes the containers that were not continued.
	for index := len(d.childFlow.events) - 1; index >= 0; index-- {
		other := d.childFlow.events[index].Token
		if other.Start.Offset < d.lineStartOffset && (!other.Ended() || other.End.Offset > d.lineStartOffset) {
			return
		}
	}

	indexBeforeExits := len(d.t.events)
	indexBeforeFlow := indexBeforeExits - 1
	seen := false
	var point Point
	for ; indexBeforeFlow >= 0; indexBeforeFlow-- {
		ev := d.t.events[indexBeforeFlow]
		if ev.Kind == EventExit && ev.Token.Type == TypeChunkFlow {
			if seen {
				point = ev.Token.End
				break
			}
			seen = true
		}
	}

	d.exitContainers(d.continued)
	d.moveExits(indexBeforeExits, indexBeforeFlow, point)
}

func (d *documentTokenizer) exitContainers(size int) {
	for index := len(d.stack) - 1; index >= size; index-- {
		entry := d.stack[index]
		d.t.containerState = entry.state
		invariant(entry.construct.Exit != nil, "expected exit to be defined on container construct")
		entry.construct.Exit(d.t, d.effects)
	}
	d.stack = d.stack[:size]
}

func (d *documentTokenizer) closeFlow() {
	invariant(d.childFlow != nil, "expected child flow to be defined when closing it")
	d.childFlow.Write([]Chunk{{Code: CodeEOF}})
	d.childToken = nil
	d.childFlow = nil
	d.t.containerState.closeFlow = false
}

func tokenizeContainer(t *Tokenizer, effects *Effects, ok, nok State) State {
	return factorySpace(effects, effects.Attempt(t.constructs().Document, ok, nok), TypeLinePrefix, t.tabSizeLimit())
}

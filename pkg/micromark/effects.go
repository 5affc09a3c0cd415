package micromark

// Effects is the set of operations a construct's state functions use to
// consume input and emit tokens.
type Effects struct {
	t *Tokenizer
}

// Consume moves past code, which must be the code just dispatched.
func (e *Effects) Consume(code Code) {
	e.t.consume(code)
}

// Enter opens a token of typ at the current point.
func (e *Effects) Enter(typ TokenType) *Token {
	return e.t.enter(typ)
}

// Exit closes the innermost open token, which must be of typ.
func (e *Effects) Exit(typ TokenType) *Token {
	return e.t.exit(typ)
}

// Attempt tries constructs in order. On success the events are kept, the
// construct's resolvers run and ok continues; on failure the tokenizer is
// rewound and nok continues.
func (e *Effects) Attempt(constructs Constructs, ok, nok State) State {
	return e.t.hook(hookAttempt, constructs, ok, nok)
}

// Check tries constructs like Attempt but always rewinds, so it only
// answers whether they would match.
func (e *Effects) Check(constructs Constructs, ok, nok State) State {
	return e.t.hook(hookCheck, constructs, ok, nok)
}

// Interrupt is Check with the tokenizer flagged as interrupting content
// while the constructs run.
func (e *Effects) Interrupt(constructs Constructs, ok, nok State) State {
	return e.t.hook(hookInterrupt, constructs, ok, nok)
}

type hookKind uint8

const (
	hookAttempt hookKind = iota
	hookCheck
	hookInterrupt
)

func (k hookKind) String() string {
	switch k {
	case hookAttempt:
		return "attempt"
	case hookCheck:
		return "check"
	default:
		return "interrupt"
	}
}

// attemptRun tries a list of candidate constructs one after the other.
type attemptRun struct {
	t           *Tokenizer
	kind        hookKind
	constructs  Constructs
	returnState State
	bogusState  State

	list      []*Construct
	index     int
	current   *Construct
	saved     snapshot
	interrupt bool
}

func (t *Tokenizer) hook(kind hookKind, constructs Constructs, returnState, bogusState State) State {
	run := &attemptRun{
		t:           t,
		kind:        kind,
		constructs:  constructs,
		returnState: returnState,
		bogusState:  bogusState,
	}
	return run.start
}

func (r *attemptRun) start(code Code) State {
	r.list = r.constructs.candidates(code)
	r.index = 0
	r.interrupt = r.t.interrupt
	if len(r.list) == 0 {
		invariant(r.bogusState != nil, "expected a fallback state for an empty construct list")
		return r.bogusState(code)
	}
	return r.handle(code)
}

func (r *attemptRun) handle(code Code) State {
	c := r.list[r.index]
	r.saved = r.t.store()
	r.current = c
	if !c.Partial {
		r.t.currentConstruct = c
	}
	if r.kind == hookInterrupt {
		r.t.interrupt = true
	}

	if c.Name != "" && r.t.session.parser.disabled(c.Name) {
		return r.nok(code)
	}

	return c.Tokenize(r.t, r.t.effects, r.ok, r.nok)(code)
}

func (r *attemptRun) ok(code Code) State {
	r.t.invariantHere(code == r.t.expectedCode, "expected code")
	r.t.consumed = true
	if r.kind == hookInterrupt {
		r.t.interrupt = r.interrupt
	}
	r.t.trace(r.kind, r.current, true)

	if r.kind == hookAttempt {
		r.t.addResult(r.current, r.saved.eventsLen)
	} else {
		r.t.restore(r.saved)
	}
	return r.returnState
}

func (r *attemptRun) nok(code Code) State {
	r.t.invariantHere(code == r.t.expectedCode, "expected code")
	r.t.consumed = true
	if r.kind == hookInterrupt {
		r.t.interrupt = r.interrupt
	}
	r.t.trace(r.kind, r.current, false)
	r.t.restore(r.saved)

	r.index++
	if r.index < len(r.list) {
		return r.handle
	}
	return r.bogusState
}

func (t *Tokenizer) trace(kind hookKind, c *Construct, ok bool) {
	logger := t.session.parser.logger
	if logger == nil || c.Name == "" {
		return
	}
	logger.Debug("construct", "hook", kind.String(), "construct", c.Name, "ok", ok, "at", t.point.String())
}

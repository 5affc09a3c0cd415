package micromark

import "fmt"

// InvariantError reports that the engine's own bookkeeping became
// inconsistent. It is raised as a panic inside the engine and converted to
// an error at the public entry points; it always means the output is not
// trustworthy.
type InvariantError struct {
	Message   string
	TokenType TokenType
	Point     Point
}

func (e *InvariantError) Error() string {
	switch {
	case e.TokenType != "":
		return fmt.Sprintf("micromark: %s (`%s` at %s)", e.Message, e.TokenType, e.Point)
	case e.Point.Line > 0:
		return fmt.Sprintf("micromark: %s (at %s)", e.Message, e.Point)
	default:
		return "micromark: " + e.Message
	}
}

func invariant(cond bool, msg string) {
	if !cond {
		panic(&InvariantError{Message: msg})
	}
}

func invariantToken(cond bool, msg string, tok *Token) {
	if !cond {
		panic(&InvariantError{Message: msg, TokenType: tok.Type, Point: tok.Start})
	}
}

// Recover converts a panic carrying an *InvariantError into an error stored
// in errp. Other panics are re-raised. Use it in a deferred call.
func Recover(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if ie, ok := r.(*InvariantError); ok {
		*errp = ie
		return
	}
	panic(r)
}

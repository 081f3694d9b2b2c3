package combat

import (
	"errors"
	"fmt"
)

var (
	ErrInvariantViolation = errors.New("invariant violation")
	ErrRoundLimit         = errors.New("round limit reached")
	ErrNoBoost            = errors.New("no attack power lets the protected faction win without losses")
)

// MalformedInputError reports a map that cannot be loaded.
type MalformedInputError struct {
	Line   int // 1-based
	Col    int // 1-based, 0 when the whole line is at fault
	Char   rune
	Reason string
}

func (e *MalformedInputError) Error() string {
	if e.Char != 0 {
		return fmt.Sprintf("malformed input at %d:%d: invalid map char %q", e.Line, e.Col, e.Char)
	}
	if e.Line > 0 {
		return fmt.Sprintf("malformed input at line %d: %s", e.Line, e.Reason)
	}
	return "malformed input: " + e.Reason
}

// InvariantError means the simulation reached a state that correct
// targeting and pathfinding never produce.
type InvariantError struct {
	Round  int
	Unit   string
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("round %d, unit %s: %s", e.Round, e.Unit, e.Detail)
}

func (e *InvariantError) Unwrap() error { return ErrInvariantViolation }

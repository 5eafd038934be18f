package domain

import (
	"fmt"
	"strings"
)

// Move is the direction the head travels after a write.
type Move int8

const (
	Stay Move = iota
	Left
	Right
)

func (m Move) String() string {
	switch m {
	case Left:
		return "L"
	case Right:
		return "R"
	case Stay:
		return "S"
	default:
		return fmt.Sprintf("Move(%d)", int8(m))
	}
}

// Valid reports whether m is Left, Right or Stay.
func (m Move) Valid() bool {
	return m == Left || m == Right || m == Stay
}

// Delta returns the head offset applied by the move.
func (m Move) Delta() int {
	switch m {
	case Left:
		return -1
	case Right:
		return 1
	default:
		return 0
	}
}

// ParseMove accepts the short (L, R, S, N) and long (left, right, stay) spellings, case-insensitive.
func ParseMove(s string) (Move, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l", "left":
		return Left, nil
	case "r", "right":
		return Right, nil
	case "s", "n", "stay", "none":
		return Stay, nil
	default:
		return Stay, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
}

// Key is the lookup key of the transition table.
type Key struct {
	State  StateID
	Symbol Symbol
}

// Rule defines a single transition: (From, Read) -> (To, Write, Move).
type Rule struct {
	From  StateID
	Read  Symbol
	To    StateID
	Write Symbol
	Move  Move
}

// Key returns the (state, symbol) pair the rule is matched on.
func (r Rule) Key() Key {
	return Key{State: r.From, Symbol: r.Read}
}

func (r Rule) String() string {
	return fmt.Sprintf("(%s, %q) -> (%s, %q, %s)", r.From, rune(r.Read), r.To, rune(r.Write), r.Move)
}

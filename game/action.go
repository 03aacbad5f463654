package game

import (
	"fmt"
	"strconv"
	"strings"
)

type ActionKind int

const (
	ActionFlag ActionKind = iota
	ActionReveal
)

func (k ActionKind) String() string {
	switch k {
	case ActionFlag:
		return "flag"
	case ActionReveal:
		return "free"
	default:
		return "unknown"
	}
}

// Action is one player move. X and Y are zero based.
type Action struct {
	X, Y int
	Kind ActionKind
}

// ParseAction reads "<col> <row> <flag|free>" with 1-based coordinates.
// "mine" is accepted for flag and "reveal" for free.
func ParseAction(line string) (Action, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return Action{}, fmt.Errorf("%w: expected <col> <row> <flag|free>", ErrInputFormat)
	}

	col, err := strconv.Atoi(fields[0])
	if err != nil {
		return Action{}, fmt.Errorf("%w: not a number", ErrInputFormat)
	}
	row, err := strconv.Atoi(fields[1])
	if err != nil {
		return Action{}, fmt.Errorf("%w: not a number", ErrInputFormat)
	}

	var kind ActionKind
	switch strings.ToLower(fields[2]) {
	case "flag", "mine":
		kind = ActionFlag
	case "free", "reveal":
		kind = ActionReveal
	default:
		return Action{}, fmt.Errorf("%w: unknown command %q", ErrInputFormat, fields[2])
	}

	return Action{X: col - 1, Y: row - 1, Kind: kind}, nil
}

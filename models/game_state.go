package models

// GameState is derived from the board after every turn; it is never stored.
type GameState int

const (
	Playing GameState = iota
	Won
	Lost
)

func (s GameState) String() string {
	switch s {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether the game is over. Won and Lost have no way out.
func (s GameState) Terminal() bool {
	return s == Won || s == Lost
}

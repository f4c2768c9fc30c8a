package game

import "fmt"

type CellState int
type Status int

const (
	Unrevealed CellState = iota - 1
	Empty
	Number1
	Number2
	Number3
	Number4
	Number5
	Number6
	Number7
	Number8
	Flag
	Mine
	MineLosing
)

var CellStates = []CellState{
	Unrevealed,
	Empty,
	Number1,
	Number2,
	Number3,
	Number4,
	Number5,
	Number6,
	Number7,
	Number8,
	Flag,
	Mine,
	MineLosing,
}

const (
	Pending Status = iota
	InProgress
	Won
	Lost
)

var statusNames = map[Status]string{
	Pending:    "pending",
	InProgress: "in-progress",
	Won:        "won",
	Lost:       "lost",
}

func (status Status) String() string {
	if name, ok := statusNames[status]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(status))
}

// IsTerminal reports whether the board accepts no further reveals or flags
func (status Status) IsTerminal() bool {
	return status == Won || status == Lost
}

const (
	DefaultSize     = 9
	DefaultNumMines = 10
)

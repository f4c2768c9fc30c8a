package game

import "fmt"

type Action int

const (
	Click       Action = iota // reveal
	RightClick                // toggle flag
	MiddleClick               // chord
)

type CellAction struct {
	Row, Col int
	Action   Action
}

func (action CellAction) String() string {
	names := map[Action]string{Click: "click", RightClick: "right-click", MiddleClick: "middle-click"}
	return fmt.Sprintf("%s(%d, %d)", names[action.Action], action.Row, action.Col)
}

func (cell *Cell) Click() CellAction {
	return CellAction{Row: cell.row, Col: cell.col, Action: Click}
}

func (cell *Cell) RightClick() CellAction {
	return CellAction{Row: cell.row, Col: cell.col, Action: RightClick}
}

func (cell *Cell) MiddleClick() CellAction {
	return CellAction{Row: cell.row, Col: cell.col, Action: MiddleClick}
}

// Apply performs the engine operation an action stands for
func (board *Board) Apply(action CellAction) (Result, error) {
	switch action.Action {
	case RightClick:
		return board.ToggleFlag(action.Row, action.Col)
	case MiddleClick:
		return board.Chord(action.Row, action.Col)
	default:
		return board.Reveal(action.Row, action.Col)
	}
}

// Director plays a board on the player's behalf
type Director interface {
	// Init binds the director to a freshly created board
	Init(*Board)

	// Act returns the next actions to take; none means it is out of ideas
	Act() []CellAction

	// End releases the board
	End()
}

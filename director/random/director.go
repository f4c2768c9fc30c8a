package random

import (
	"github.com/they4kman/minefield/game"
)

// Director clicks hidden cells in a random order fixed at Init
type Director struct {
	board *game.Board
	order []*game.Cell
}

func (director *Director) Init(board *game.Board) {
	director.board = board
	director.order = board.Cells()

	board.Rand().Shuffle(len(director.order), func(i, j int) {
		director.order[i], director.order[j] = director.order[j], director.order[i]
	})
}

func (director *Director) Act() []game.CellAction {
	if director.board == nil || director.board.Status().IsTerminal() {
		return nil
	}

	for _, cell := range director.order {
		if !cell.IsRevealed() && !cell.HasFlag() {
			return []game.CellAction{cell.Click()}
		}
	}
	return nil
}

func (director *Director) End() {
	director.board = nil
	director.order = nil
}

package game

import (
	"fmt"
)

// Coord identifies a cell by its (row, col) position
type Coord struct {
	Row, Col int
}

func (coord Coord) String() string {
	return fmt.Sprintf("(%d, %d)", coord.Row, coord.Col)
}

type Cell struct {
	row, col      int
	adjacentCount int

	hasMine, isRevealed, hasFlag bool
	isLosingMine                 bool
}

func (cell *Cell) String() string {
	return fmt.Sprintf("Cell(%v, %v)", cell.row, cell.col)
}

func (cell *Cell) Row() int {
	return cell.row
}

func (cell *Cell) Col() int {
	return cell.col
}

func (cell *Cell) Coord() Coord {
	return Coord{Row: cell.row, Col: cell.col}
}

func (cell *Cell) HasMine() bool {
	return cell.hasMine
}

func (cell *Cell) IsRevealed() bool {
	return cell.isRevealed
}

func (cell *Cell) HasFlag() bool {
	return cell.hasFlag
}

// AdjacentCount is the number of mines among the cell's neighbors. It carries
// no meaning for a cell which itself holds a mine.
func (cell *Cell) AdjacentCount() int {
	return cell.adjacentCount
}

// IsLosingMine reports whether revealing this cell lost the game
func (cell *Cell) IsLosingMine() bool {
	return cell.isLosingMine
}

// State maps the cell onto what a presentation layer should draw
func (cell *Cell) State() CellState {
	switch {
	case !cell.isRevealed && cell.hasFlag:
		return Flag
	case !cell.isRevealed:
		return Unrevealed
	case cell.isLosingMine:
		return MineLosing
	case cell.hasMine:
		return Mine
	default:
		return CellState(cell.adjacentCount)
	}
}

func (cell *Cell) serialize() string {
	switch {
	case cell.hasMine:
		switch {
		case cell.isLosingMine:
			return "*"
		case cell.hasFlag:
			return "F"
		default:
			return "O"
		}
	case cell.hasFlag:
		return "f"
	case cell.isRevealed:
		return "."
	default:
		return "#"
	}
}

// deserialize restores mine placement, and unless fresh, the visible state
func (cell *Cell) deserialize(c rune, fresh bool) bool {
	switch c {
	case '*', 'F', 'O':
		cell.hasMine = true

		if fresh {
			break
		}
		switch c {
		case '*':
			cell.isLosingMine = true
			cell.isRevealed = true
		case 'F':
			cell.hasFlag = true
		}
	case 'f':
		if !fresh {
			cell.hasFlag = true
		}
	case '.':
		if !fresh {
			cell.isRevealed = true
		}
	case '#':
	default:
		return false
	}

	return true
}

package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/they4kman/minefield/game"
)

// canvas is the part of tcell.Screen drawing needs
type canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

const (
	headerRow   = 0
	boardTop    = 2
	cellColumns = 2
	minWidth    = 48
)

var (
	styleHidden = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleEmpty  = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleFlag   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleMine   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleLosing = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorRed).Bold(true)
	styleText   = tcell.StyleDefault
	styleWon    = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleLost   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleHelp   = tcell.StyleDefault.Foreground(tcell.ColorDarkCyan)
)

var numberColors = map[game.CellState]tcell.Color{
	game.Number1: tcell.ColorBlue,
	game.Number2: tcell.ColorGreen,
	game.Number3: tcell.ColorRed,
	game.Number4: tcell.ColorNavy,
	game.Number5: tcell.ColorMaroon,
	game.Number6: tcell.ColorTeal,
	game.Number7: tcell.ColorPurple,
	game.Number8: tcell.ColorGray,
}

func glyph(cell *game.Cell) (rune, tcell.Style) {
	switch state := cell.State(); state {
	case game.Unrevealed:
		return '#', styleHidden
	case game.Flag:
		return 'F', styleFlag
	case game.Mine:
		return '*', styleMine
	case game.MineLosing:
		return '*', styleLosing
	case game.Empty:
		return '.', styleEmpty
	default:
		return rune('0' + int(state)), tcell.StyleDefault.Foreground(numberColors[state]).Bold(true)
	}
}

func cellPosition(row, col int) (x, y int) {
	return col * cellColumns, boardTop + row
}

func cellAtPosition(x, y int) (row, col int) {
	return y - boardTop, x / cellColumns
}

func drawCell(c canvas, cell *game.Cell, cursor bool) {
	r, style := glyph(cell)
	if cursor {
		style = style.Reverse(true)
	}
	x, y := cellPosition(cell.Row(), cell.Col())
	c.SetContent(x, y, r, nil, style)
}

// drawLine writes text at row y and blanks the rest of the line up to width
func drawLine(c canvas, y int, text string, style tcell.Style, width int) {
	x := 0
	for _, r := range text {
		c.SetContent(x, y, r, nil, style)
		x++
	}
	for ; x < width; x++ {
		c.SetContent(x, y, ' ', nil, styleText)
	}
}

func statusLabel(status game.Status) (string, tcell.Style) {
	switch status {
	case game.Won:
		return "WIN!", styleWon
	case game.Lost:
		return "LOSE :(", styleLost
	case game.InProgress:
		return "playing", styleText
	default:
		return "ready", styleText
	}
}

func headerText(minesRemaining, seconds int, status game.Status) (string, tcell.Style) {
	label, style := statusLabel(status)
	return fmt.Sprintf("%03d   %03d   %s", minesRemaining, seconds, label), style
}

const helpText = "arrows/hjkl move  space reveal  f flag  c chord  n new  q quit"

package random

import (
	"testing"

	"github.com/they4kman/minefield/game"
)

// Should keep clicking distinct hidden cells until the game ends
func TestDirectorPlaysToTheEnd(t *testing.T) {
	board, err := game.NewBoard(game.BoardConfig{Size: 6, NumMines: 5, Seed: 3})
	if err != nil {
		t.Fatal(err)
	}

	director := &Director{}
	director.Init(board)
	defer director.End()

	for turn := 0; turn < board.NumCells(); turn++ {
		actions := director.Act()
		if board.Status().IsTerminal() {
			if len(actions) != 0 {
				t.Fatalf("expected no actions on a %v board", board.Status())
			}
			return
		}
		if len(actions) != 1 || actions[0].Action != game.Click {
			t.Fatalf("expected a single click, got %v", actions)
		}

		cell, err := board.CellAt(actions[0].Row, actions[0].Col)
		if err != nil {
			t.Fatal(err)
		}
		if cell.IsRevealed() || cell.HasFlag() {
			t.Fatalf("director clicked %v which is not hidden", cell)
		}
		if _, err := board.Apply(actions[0]); err != nil {
			t.Fatal(err)
		}
	}

	if !board.Status().IsTerminal() {
		t.Errorf("expected a terminal board, got %v", board.Status())
	}
}

// Should skip flagged cells
func TestDirectorIgnoresFlags(t *testing.T) {
	snapshot := &game.BoardSnapshot{Seed: 9, SerializedBoard: "fO\n##"}
	board, err := snapshot.CreateBoard(false)
	if err != nil {
		t.Fatal(err)
	}

	director := &Director{}
	director.Init(board)

	for i := 0; i < 10; i++ {
		for _, action := range director.Act() {
			if action.Row == 0 && action.Col == 0 {
				t.Fatal("director clicked a flagged cell")
			}
		}
	}
}

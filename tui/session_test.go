package tui

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/they4kman/minefield/game"
	"github.com/they4kman/minefield/leaderboard"
)

type fakeCanvas struct {
	runes map[[2]int]rune
}

func newFakeCanvas() *fakeCanvas {
	return &fakeCanvas{runes: make(map[[2]int]rune)}
}

func (c *fakeCanvas) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	c.runes[[2]int{x, y}] = primary
}

func (c *fakeCanvas) line(y, width int) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		if r, ok := c.runes[[2]int{x, y}]; ok {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.TrimRight(b.String(), " ")
}

func (c *fakeCanvas) cell(row, col int) rune {
	x, y := cellPosition(row, col)
	return c.runes[[2]int{x, y}]
}

// A single mine in the top-left corner: (2, 2) clears the board in one reveal
const cornerMine = "O##\n###\n###"

func newTestSession(t *testing.T, serialized string, options Options) *session {
	t.Helper()

	config := game.NewGameConfig()
	config.Snapshot = &game.BoardSnapshot{Seed: 1, SerializedBoard: serialized}
	s, err := newSession(config, options)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func press(t *testing.T, s *session, keys string) {
	t.Helper()
	for _, r := range keys {
		if s.handleKey(key(r)) {
			t.Fatalf("unexpected quit on %q", r)
		}
	}
}

func TestSessionCursorMovement(t *testing.T) {
	s := newTestSession(t, cornerMine, Options{})

	tests := []struct {
		keys string
		want game.Coord
	}{
		{"l", game.Coord{Row: 0, Col: 1}},
		{"jj", game.Coord{Row: 2, Col: 1}},
		{"jjj", game.Coord{Row: 2, Col: 1}},
		{"hhhh", game.Coord{Row: 2, Col: 0}},
		{"kl", game.Coord{Row: 1, Col: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			press(t, s, tt.keys)
			if s.cursor != tt.want {
				t.Errorf("expected cursor %v, got %v", tt.want, s.cursor)
			}
		})
	}

	s.handleKey(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	if s.cursor != (game.Coord{Row: 0, Col: 1}) {
		t.Errorf("expected arrow up to move to (0, 1), got %v", s.cursor)
	}
}

func TestSessionRevealWins(t *testing.T) {
	s := newTestSession(t, cornerMine, Options{})
	press(t, s, "lljj ")

	if s.board.Status() != game.Won {
		t.Fatalf("expected a win, got %v", s.board.Status())
	}
	if s.clock.Running() {
		t.Error("expected the clock to stop on a win")
	}
	if !strings.HasPrefix(s.message, "Cleared in") {
		t.Errorf("unexpected message %q", s.message)
	}

	c := newFakeCanvas()
	s.draw(c)
	if got := c.line(headerRow, minWidth); !strings.HasSuffix(got, "WIN!") {
		t.Errorf("expected header to announce the win, got %q", got)
	}
	if c.cell(0, 0) != '*' {
		t.Errorf("expected revealed mine, got %q", c.cell(0, 0))
	}
	if c.cell(2, 2) != '.' || c.cell(1, 1) != '1' {
		t.Errorf("unexpected board rendering: %q %q", c.cell(2, 2), c.cell(1, 1))
	}
}

func TestSessionRevealLoses(t *testing.T) {
	s := newTestSession(t, cornerMine, Options{})
	press(t, s, " ")

	if s.board.Status() != game.Lost {
		t.Fatalf("expected a loss, got %v", s.board.Status())
	}
	if !strings.HasPrefix(s.message, "Boom") {
		t.Errorf("unexpected message %q", s.message)
	}

	c := newFakeCanvas()
	s.draw(c)
	if c.cell(0, 0) != '*' {
		t.Errorf("expected losing mine, got %q", c.cell(0, 0))
	}

	// Further input is ignored until a new game
	press(t, s, "lf")
	if s.board.NumFlags() != 0 {
		t.Error("expected flagging to be rejected after a loss")
	}

	s.handleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	if s.board.Status() != game.Pending || s.clock.Elapsed() != 0 {
		t.Errorf("expected a fresh game, got %v", s.board.Status())
	}
}

func TestSessionFlagAndHeader(t *testing.T) {
	s := newTestSession(t, cornerMine, Options{})
	press(t, s, "f")

	c := newFakeCanvas()
	s.draw(c)
	if c.cell(0, 0) != 'F' {
		t.Errorf("expected a flag, got %q", c.cell(0, 0))
	}
	if got := c.line(headerRow, minWidth); !strings.HasPrefix(got, "000   000   ready") {
		t.Errorf("unexpected header %q", got)
	}

	press(t, s, "f")
	s.draw(c)
	if c.cell(0, 0) != '#' {
		t.Errorf("expected the flag to be removed, got %q", c.cell(0, 0))
	}
}

func TestSessionChord(t *testing.T) {
	s := newTestSession(t, cornerMine, Options{})
	press(t, s, "fjl ")
	if s.board.Status() != game.InProgress {
		t.Fatalf("expected game in progress, got %v", s.board.Status())
	}

	press(t, s, "c")
	if s.board.Status() != game.Won {
		t.Errorf("expected chord on (1, 1) to clear the board, got %v", s.board.Status())
	}
}

func TestSessionMouse(t *testing.T) {
	s := newTestSession(t, cornerMine, Options{})
	x, y := cellPosition(0, 1)

	s.handleMouse(tcell.NewEventMouse(x, y, tcell.ButtonSecondary, tcell.ModNone))
	cell, _ := s.board.CellAt(0, 1)
	if !cell.HasFlag() {
		t.Fatal("expected right press to flag")
	}
	if s.cursor != (game.Coord{Row: 0, Col: 1}) {
		t.Errorf("expected cursor to follow the mouse, got %v", s.cursor)
	}

	// Held button is not a new press
	s.handleMouse(tcell.NewEventMouse(x, y, tcell.ButtonSecondary, tcell.ModNone))
	if !cell.HasFlag() {
		t.Error("expected a held button to do nothing")
	}

	s.handleMouse(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
	s.handleMouse(tcell.NewEventMouse(x, y, tcell.ButtonSecondary, tcell.ModNone))
	if cell.HasFlag() {
		t.Error("expected a second press to unflag")
	}

	// Outside the board
	s.handleMouse(tcell.NewEventMouse(0, 0, tcell.ButtonNone, tcell.ModNone))
	s.handleMouse(tcell.NewEventMouse(0, 0, tcell.ButtonPrimary, tcell.ModNone))
	if s.board.Status() != game.Pending {
		t.Errorf("expected header click to be ignored, got %v", s.board.Status())
	}
}

func TestSessionLeaderboardPrompt(t *testing.T) {
	store, err := leaderboard.Open(filepath.Join(t.TempDir(), "leaderboard.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	s := newTestSession(t, cornerMine, Options{Leaderboard: store})
	press(t, s, "lljj ")

	if s.mode != modeName {
		t.Fatal("expected a name prompt after winning")
	}

	// Movement keys type while naming
	press(t, s, "jill")
	s.handleKey(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))

	c := newFakeCanvas()
	s.draw(c)
	footer := boardTop + s.board.Size() + 1
	if got := c.line(footer, minWidth); got != "Your name: jil_" {
		t.Errorf("unexpected prompt %q", got)
	}

	s.handleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	if s.mode != modePlay {
		t.Error("expected prompt to close")
	}
	entries := store.Entries()
	if len(entries) != 1 || entries[0].Name != "jil" {
		t.Fatalf("unexpected entries %v", entries)
	}
	if !strings.HasPrefix(s.message, "jil placed #1") {
		t.Errorf("unexpected message %q", s.message)
	}
}

func TestSessionLeaderboardPlayerName(t *testing.T) {
	store, err := leaderboard.Open(filepath.Join(t.TempDir(), "leaderboard.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	s := newTestSession(t, cornerMine, Options{Leaderboard: store, PlayerName: "ana"})
	press(t, s, "lljj ")

	if s.mode != modePlay {
		t.Error("expected no prompt with a preset name")
	}
	if entries := store.Entries(); len(entries) != 1 || entries[0].Name != "ana" {
		t.Errorf("unexpected entries %v", entries)
	}
}

func TestSessionQuit(t *testing.T) {
	s := newTestSession(t, cornerMine, Options{})
	if !s.handleKey(key('q')) {
		t.Error("expected q to quit")
	}
	if !s.handleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("expected Esc to quit")
	}
}

type scriptedDirector struct {
	board   *game.Board
	inits   int
	actions []game.CellAction
}

func (d *scriptedDirector) Init(board *game.Board) {
	d.board = board
	d.inits++
}

func (d *scriptedDirector) Act() []game.CellAction {
	if len(d.actions) == 0 {
		return nil
	}
	next := d.actions[0]
	d.actions = d.actions[1:]
	return []game.CellAction{next}
}

func (d *scriptedDirector) End() {}

func TestSessionDirector(t *testing.T) {
	director := &scriptedDirector{actions: []game.CellAction{
		{Row: 0, Col: 0, Action: game.RightClick},
		{Row: 2, Col: 2, Action: game.Click},
	}}

	config := game.NewGameConfig()
	config.Snapshot = &game.BoardSnapshot{Seed: 1, SerializedBoard: cornerMine}
	config.Director = director
	store, err := leaderboard.Open(filepath.Join(t.TempDir(), "leaderboard.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	s, err := newSession(config, Options{Leaderboard: store})
	if err != nil {
		t.Fatal(err)
	}
	if director.inits != 1 || director.board != s.board {
		t.Fatal("expected the director to be initialized with the board")
	}

	press(t, s, "p")
	s.directorStep(false)
	if s.board.NumFlags() != 0 {
		t.Error("expected a paused director to wait")
	}

	press(t, s, ".")
	if s.board.NumFlags() != 1 {
		t.Error("expected a forced step while paused")
	}

	press(t, s, "p")
	s.directorStep(false)
	if s.board.Status() != game.Won {
		t.Fatalf("expected the director to win, got %v", s.board.Status())
	}
	if entries := store.Entries(); len(entries) != 1 || entries[0].Name != "director" {
		t.Errorf("expected a director entry, got %v", entries)
	}

	press(t, s, "n")
	if director.inits != 2 || director.board != s.board {
		t.Error("expected the director to restart on a new game")
	}
	if s.board.Status() != game.Pending {
		t.Errorf("expected the snapshot to be reloaded, got %v", s.board.Status())
	}
}

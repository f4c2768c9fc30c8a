package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/they4kman/minefield/game"
	"github.com/they4kman/minefield/leaderboard"
)

type Options struct {
	// Where won games are recorded; nil disables the name prompt
	Leaderboard *leaderboard.Store
	// Name used for leaderboard entries without prompting
	PlayerName string
	Sound      bool
}

type inputMode int

const (
	modePlay inputMode = iota
	modeName
)

const maxNameLength = 24

// session is the game state between two frames. It never touches a real
// screen.
type session struct {
	config  game.GameConfig
	options Options

	board  *game.Board
	clock  *clock
	sounds *sounds

	cursor      game.Coord
	mode        inputMode
	name        []rune
	message     string
	paused      bool
	lastButtons tcell.ButtonMask

	dirty      []*game.Cell
	fullRedraw bool
}

func newSession(config game.GameConfig, options Options) (*session, error) {
	board, err := config.CreateBoard()
	if err != nil {
		return nil, err
	}

	s := &session{
		config:     config,
		options:    options,
		board:      board,
		clock:      newClock(),
		sounds:     newSounds(options.Sound),
		fullRedraw: true,
	}
	s.restore()
	s.startDirector()
	return s, nil
}

// restore syncs the clock with a board that may already be under way
func (s *session) restore() {
	switch s.board.Status() {
	case game.InProgress:
		s.clock.Start()
	case game.Won, game.Lost:
		s.message = "Press n for a new game"
	}
}

func (s *session) startDirector() {
	if s.config.Director == nil {
		return
	}
	s.config.Director.Init(s.board)
	logrus.WithField("seed", s.board.Seed()).Debug("director started")
}

func (s *session) width() int {
	if w := s.board.Size() * cellColumns; w > minWidth {
		return w
	}
	return minWidth
}

func (s *session) apply(action game.CellAction) {
	result, err := s.board.Apply(action)
	if err != nil {
		logrus.WithError(err).WithField("action", action).Debug("ignored action")
		return
	}
	s.handleResult(result, action.Action)
}

func (s *session) handleResult(result game.Result, action game.Action) {
	s.dirty = append(s.dirty, result.Changed...)

	if result.Started() {
		s.clock.Start()
	}

	if result.StatusChanged() && result.Status.IsTerminal() {
		s.endGame()
		return
	}

	if len(result.Changed) > 0 {
		if action == game.RightClick {
			s.sounds.flag()
		} else {
			s.sounds.reveal()
		}
	}
}

func (s *session) endGame() {
	s.clock.Stop()
	s.config.OnGameEnd(s.board)

	logrus.WithFields(logrus.Fields{
		"status":  s.board.Status(),
		"elapsed": s.clock.Elapsed(),
		"seed":    s.board.Seed(),
	}).Info("game over")

	if s.board.Status() == game.Lost {
		s.sounds.lose()
		s.message = "Boom. Press n for a new game"
		return
	}

	s.sounds.win()
	switch {
	case s.options.Leaderboard == nil:
		s.message = fmt.Sprintf("Cleared in %.1fs. Press n for a new game", s.clock.Elapsed().Seconds())
	case s.options.PlayerName != "":
		s.record(s.options.PlayerName)
	case s.config.Director != nil:
		s.record("director")
	default:
		s.mode = modeName
		s.name = s.name[:0]
	}
}

func (s *session) record(name string) {
	entry, err := s.options.Leaderboard.Add(name, s.clock.Elapsed())
	if err != nil {
		logrus.WithError(err).Warn("could not record leaderboard entry")
		s.message = fmt.Sprintf("Score not saved: %v", err)
		return
	}

	s.mode = modePlay
	s.message = fmt.Sprintf("%s placed #%d in %.1fs. Press n for a new game",
		entry.Name, s.options.Leaderboard.Rank(entry.ID), entry.Time.Seconds())
}

func (s *session) newGame() {
	if s.config.Director != nil {
		s.config.Director.End()
	}

	if s.config.Snapshot != nil {
		board, err := s.config.CreateBoard()
		if err != nil {
			logrus.WithError(err).Warn("could not reload snapshot")
			s.message = fmt.Sprintf("Could not reload snapshot: %v", err)
			return
		}
		s.board = board
	} else {
		s.board.Reset()
	}

	s.clock.Reset()
	s.mode = modePlay
	s.message = ""
	s.dirty = nil
	s.fullRedraw = true
	s.setCursor(s.cursor.Row, s.cursor.Col)
	s.restore()
	s.startDirector()
}

func (s *session) setCursor(row, col int) {
	size := s.board.Size()
	row = clamp(row, 0, size-1)
	col = clamp(col, 0, size-1)

	if old, err := s.board.CellAt(s.cursor.Row, s.cursor.Col); err == nil {
		s.dirty = append(s.dirty, old)
	}
	s.cursor = game.Coord{Row: row, Col: col}
	if cell, err := s.board.CellAt(row, col); err == nil {
		s.dirty = append(s.dirty, cell)
	}
}

func (s *session) moveCursor(dRow, dCol int) {
	s.setCursor(s.cursor.Row+dRow, s.cursor.Col+dCol)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (s *session) act(action game.Action) {
	s.apply(game.CellAction{Row: s.cursor.Row, Col: s.cursor.Col, Action: action})
}

// handleKey reports whether the player asked to quit
func (s *session) handleKey(ev *tcell.EventKey) bool {
	if s.mode == modeName {
		s.handleNameKey(ev)
		return false
	}

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		s.moveCursor(-1, 0)
	case tcell.KeyDown:
		s.moveCursor(1, 0)
	case tcell.KeyLeft:
		s.moveCursor(0, -1)
	case tcell.KeyRight:
		s.moveCursor(0, 1)
	case tcell.KeyEnter:
		if s.board.Status().IsTerminal() {
			s.newGame()
		} else {
			s.act(game.Click)
		}
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'k':
			s.moveCursor(-1, 0)
		case 'j':
			s.moveCursor(1, 0)
		case 'h':
			s.moveCursor(0, -1)
		case 'l':
			s.moveCursor(0, 1)
		case ' ':
			s.act(game.Click)
		case 'f':
			s.act(game.RightClick)
		case 'c':
			s.act(game.MiddleClick)
		case 'n':
			s.newGame()
		case 'p':
			s.paused = !s.paused
		case '.':
			// Single director step, mostly useful while paused
			s.directorStep(true)
		}
	}
	return false
}

func (s *session) handleNameKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEnter:
		name := strings.TrimSpace(string(s.name))
		if name == "" {
			return
		}
		s.record(name)
	case tcell.KeyEscape:
		s.mode = modePlay
		s.message = "Score discarded. Press n for a new game"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(s.name) > 0 {
			s.name = s.name[:len(s.name)-1]
		}
	case tcell.KeyRune:
		if len(s.name) < maxNameLength {
			s.name = append(s.name, ev.Rune())
		}
	}
}

func (s *session) handleMouse(ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	pressed := buttons &^ s.lastButtons
	s.lastButtons = buttons

	if s.mode != modePlay {
		return
	}

	x, y := ev.Position()
	row, col := cellAtPosition(x, y)
	if row < 0 || row >= s.board.Size() || col < 0 || col >= s.board.Size() {
		return
	}
	s.setCursor(row, col)

	switch {
	case pressed&tcell.ButtonPrimary != 0:
		s.act(game.Click)
	case pressed&tcell.ButtonSecondary != 0:
		s.act(game.RightClick)
	case pressed&tcell.ButtonMiddle != 0:
		s.act(game.MiddleClick)
	}
}

// directorStep asks the director for its next moves. force ignores pausing.
func (s *session) directorStep(force bool) {
	if s.config.Director == nil || s.mode != modePlay || s.board.Status().IsTerminal() {
		return
	}
	if s.paused && !force {
		return
	}

	actions := s.config.Director.Act()
	if len(actions) == 0 {
		s.message = "Director has no moves"
		return
	}
	for _, action := range actions {
		logrus.WithField("action", action).Debug("director move")
		s.apply(action)
		if s.board.Status().IsTerminal() {
			break
		}
	}
}

func (s *session) draw(c canvas) {
	if s.fullRedraw {
		for _, cell := range s.board.Cells() {
			drawCell(c, cell, cell.Coord() == s.cursor)
		}
		s.fullRedraw = false
	} else {
		for _, cell := range s.dirty {
			drawCell(c, cell, cell.Coord() == s.cursor)
		}
	}
	s.dirty = s.dirty[:0]

	width := s.width()
	header, style := headerText(s.board.MinesRemaining(), s.clock.Seconds(), s.board.Status())
	if s.config.Director != nil && s.paused {
		header += "   [paused]"
	}
	drawLine(c, headerRow, header, style, width)

	footer := boardTop + s.board.Size() + 1
	switch {
	case s.mode == modeName:
		drawLine(c, footer, "Your name: "+string(s.name)+"_", styleText, width)
	default:
		drawLine(c, footer, s.message, styleText, width)
	}
	drawLine(c, footer+1, helpText, styleHelp, width)
}

func (s *session) directorInterval() time.Duration {
	if s.config.DirectorInterval <= 0 {
		return game.NewGameConfig().DirectorInterval
	}
	return s.config.DirectorInterval
}

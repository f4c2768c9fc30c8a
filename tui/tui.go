// Package tui plays a board in the terminal with tcell.
package tui

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/they4kman/minefield/game"
)

// Run blocks until the player quits
func Run(config game.GameConfig, options Options) error {
	s, err := newSession(config, options)
	if err != nil {
		return errors.Wrap(err, "creating board")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "creating screen")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "initializing screen")
	}
	defer screen.Fini()

	screen.EnableMouse()
	screen.Clear()

	done := make(chan struct{})
	defer close(done)
	events := pollEvents(screen, done)

	second := time.NewTicker(time.Second)
	defer second.Stop()

	var directorTick <-chan time.Time
	if config.Director != nil {
		ticker := time.NewTicker(s.directorInterval())
		defer ticker.Stop()
		directorTick = ticker.C
	}

	logrus.WithFields(logrus.Fields{
		"size":  s.board.Size(),
		"mines": s.board.NumMines(),
		"seed":  s.board.Seed(),
	}).Info("starting game")

	s.draw(screen)
	screen.Show()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if s.handleKey(ev) {
					return nil
				}
			case *tcell.EventMouse:
				s.handleMouse(ev)
			case *tcell.EventResize:
				screen.Clear()
				screen.Sync()
				s.fullRedraw = true
			}
		case <-second.C:
			// Header only, for the clock
		case <-directorTick:
			s.directorStep(false)
		}

		s.draw(screen)
		screen.Show()
	}
}

// pollEvents forwards screen events until the screen is finalized or done is
// closed
func pollEvents(screen poller, done <-chan struct{}) <-chan tcell.Event {
	events := make(chan tcell.Event, 16)
	go func() {
		defer close(events)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()
	return events
}

type poller interface {
	PollEvent() tcell.Event
}

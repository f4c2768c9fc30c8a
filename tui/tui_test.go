package tui

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

// endlessPoller always has another key waiting
type endlessPoller struct{}

func (endlessPoller) PollEvent() tcell.Event {
	return tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)
}

type finishedPoller struct{}

func (finishedPoller) PollEvent() tcell.Event {
	return nil
}

func waitClosed(t *testing.T, events <-chan tcell.Event) {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("event channel was never closed")
		}
	}
}

func TestPollEventsStopsWhenDone(t *testing.T) {
	done := make(chan struct{})
	events := pollEvents(endlessPoller{}, done)

	// Let the buffer fill so the forwarder is blocked on a send
	deadline := time.Now().Add(time.Second)
	for len(events) < cap(events) && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	close(done)
	waitClosed(t, events)
}

func TestPollEventsStopsWhenScreenFinalized(t *testing.T) {
	done := make(chan struct{})
	defer close(done)

	waitClosed(t, pollEvents(finishedPoller{}, done))
}

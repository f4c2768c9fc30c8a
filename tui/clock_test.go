package tui

import (
	"testing"
	"time"
)

type manualTime struct {
	current time.Time
}

func (m *manualTime) now() time.Time {
	return m.current
}

func (m *manualTime) advance(d time.Duration) {
	m.current = m.current.Add(d)
}

func TestClock(t *testing.T) {
	mt := &manualTime{current: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := &clock{now: mt.now}

	if c.Elapsed() != 0 || c.Running() {
		t.Fatal("expected a fresh clock to read zero and not run")
	}

	c.Start()
	mt.advance(1500 * time.Millisecond)
	if c.Elapsed() != 1500*time.Millisecond {
		t.Errorf("expected 1.5s while running, got %v", c.Elapsed())
	}
	if c.Seconds() != 1 {
		t.Errorf("expected 1 whole second, got %d", c.Seconds())
	}

	c.Stop()
	mt.advance(time.Hour)
	if c.Elapsed() != 1500*time.Millisecond {
		t.Errorf("expected stopped clock to hold 1.5s, got %v", c.Elapsed())
	}

	c.Stop()
	if c.Elapsed() != 1500*time.Millisecond {
		t.Error("second Stop must not move the clock")
	}

	c.Reset()
	if c.Elapsed() != 0 || c.Running() {
		t.Error("expected Reset to zero the clock")
	}
}

func TestClockSecondsCapped(t *testing.T) {
	mt := &manualTime{current: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := &clock{now: mt.now}

	c.Start()
	mt.advance(2 * time.Hour)
	if c.Seconds() != 999 {
		t.Errorf("expected 999, got %d", c.Seconds())
	}
}

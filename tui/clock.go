package tui

import "time"

// clock tracks elapsed play time. It only knows start/stop; the session
// decides when to call them by watching the board status.
type clock struct {
	now     func() time.Time
	started time.Time
	stopped time.Time
	running bool
}

func newClock() *clock {
	return &clock{now: time.Now}
}

func (c *clock) Start() {
	c.started = c.now()
	c.stopped = time.Time{}
	c.running = true
}

func (c *clock) Stop() {
	if c.running {
		c.stopped = c.now()
		c.running = false
	}
}

func (c *clock) Reset() {
	c.started = time.Time{}
	c.stopped = time.Time{}
	c.running = false
}

func (c *clock) Running() bool {
	return c.running
}

func (c *clock) Elapsed() time.Duration {
	switch {
	case c.started.IsZero():
		return 0
	case c.running:
		return c.now().Sub(c.started)
	default:
		return c.stopped.Sub(c.started)
	}
}

// Seconds is what the header shows, capped like a classic 3-digit counter
func (c *clock) Seconds() int {
	seconds := int(c.Elapsed() / time.Second)
	if seconds > 999 {
		return 999
	}
	return seconds
}

package tui

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/sirupsen/logrus"
)

type sounds struct {
	enabled    bool
	sampleRate beep.SampleRate
}

// newSounds initializes the speaker when asked to. Failure is non-fatal: the
// game runs silently.
func newSounds(enabled bool) *sounds {
	if !enabled {
		return &sounds{}
	}

	sampleRate := beep.SampleRate(44100)
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		logrus.WithError(err).Warn("audio initialization failed")
		return &sounds{}
	}
	return &sounds{enabled: true, sampleRate: sampleRate}
}

func (s *sounds) tone(freq float64, duration time.Duration) {
	if !s.enabled {
		return
	}

	sine, err := generators.SineTone(s.sampleRate, freq)
	if err != nil {
		logrus.WithError(err).Debug("could not generate tone")
		return
	}
	speaker.Play(beep.Take(s.sampleRate.N(duration), sine))
}

func (s *sounds) reveal() {
	s.tone(880, 30*time.Millisecond)
}

func (s *sounds) flag() {
	s.tone(660, 20*time.Millisecond)
}

func (s *sounds) win() {
	s.tone(1320, 250*time.Millisecond)
}

func (s *sounds) lose() {
	s.tone(110, 400*time.Millisecond)
}

package cues

import (
	"fmt"
	"time"
)

// Beeper is the part of tcell.Screen the bell sink needs
type Beeper interface {
	Beep() error
}

// BellToneSink rings the terminal bell. A terminal bell has no pitch, so
// tones are told apart by count: long tones ring twice.
type BellToneSink struct {
	beeper Beeper
	sleep  func(time.Duration)
}

const longToneThreshold = 300 * time.Millisecond

func NewBellToneSink(beeper Beeper) *BellToneSink {
	if beeper == nil {
		panic("BellToneSink: beeper cannot be nil")
	}
	return &BellToneSink{beeper: beeper, sleep: time.Sleep}
}

func (s *BellToneSink) PlayTone(tone Tone) error {
	rings := 1
	if tone.Duration >= longToneThreshold {
		rings = 2
	}
	for i := 0; i < rings; i++ {
		if i > 0 {
			s.sleep(tone.Duration / 2)
		}
		if err := s.beeper.Beep(); err != nil {
			return fmt.Errorf("ringing bell for %s tone: %w", tone.Name, err)
		}
	}
	return nil
}

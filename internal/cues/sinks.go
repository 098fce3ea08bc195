package cues

import (
	"time"
)

// ToneSink plays a tone. Implementations may block for the tone's duration.
type ToneSink interface {
	PlayTone(tone Tone) error
}

// SpeechSink speaks a short phrase
type SpeechSink interface {
	Speak(phrase string) error
}

// VibrationSink plays an on / off vibration pattern
type VibrationSink interface {
	Vibrate(pattern []time.Duration) error
}

// Sinks groups the output channels of a Dispatcher. Nil members are silent.
type Sinks struct {
	Tone      ToneSink
	Speech    SpeechSink
	Vibration VibrationSink
}

type noopSink struct{}

func (noopSink) PlayTone(Tone) error           { return nil }
func (noopSink) Speak(string) error            { return nil }
func (noopSink) Vibrate([]time.Duration) error { return nil }

// NoopVibration is used on terminals, which have nothing to vibrate
var NoopVibration VibrationSink = noopSink{}

func (s Sinks) withDefaults() Sinks {
	if s.Tone == nil {
		s.Tone = noopSink{}
	}
	if s.Speech == nil {
		s.Speech = noopSink{}
	}
	if s.Vibration == nil {
		s.Vibration = noopSink{}
	}
	return s
}

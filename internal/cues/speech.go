package cues

import (
	"context"
	"fmt"
	"log"
	"os/exec"
	"time"
)

// speechCommands are tried in order; the first one found on PATH is used
var speechCommands = []string{"espeak", "spd-say", "say"}

const speechTimeout = 5 * time.Second

var lookPath = exec.LookPath

// CommandSpeechSink speaks by running a text-to-speech program
type CommandSpeechSink struct {
	path string
	run  func(ctx context.Context, path, phrase string) error
}

// NewSpeechSink returns a sink backed by the first available speech
// program, or a silent sink when there is none
func NewSpeechSink(logger *log.Logger) SpeechSink {
	if logger == nil {
		panic("SpeechSink: logger cannot be nil")
	}
	for _, name := range speechCommands {
		path, err := lookPath(name)
		if err != nil {
			continue
		}
		logger.Printf("SpeechSink: Using %s", path)
		return &CommandSpeechSink{path: path, run: runSpeech}
	}
	logger.Printf("SpeechSink: No speech program found (tried %v), speech cues are silent", speechCommands)
	return noopSink{}
}

func (s *CommandSpeechSink) Speak(phrase string) error {
	ctx, cancel := context.WithTimeout(context.Background(), speechTimeout)
	defer cancel()
	if err := s.run(ctx, s.path, phrase); err != nil {
		return fmt.Errorf("speaking %q with %s: %w", phrase, s.path, err)
	}
	return nil
}

func runSpeech(ctx context.Context, path, phrase string) error {
	return exec.CommandContext(ctx, path, phrase).Run()
}

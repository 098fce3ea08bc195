package config

import (
	"bytes"
	"io"
	"log"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logMaxSizeMB  = 5
	logMaxBackups = 3
	logMaxAgeDays = 14
)

// NewLogger writes to a rotating file at path and, when uiLines is not nil,
// copies each line into it for the on-screen log pane. Close the returned
// closer on exit.
func NewLogger(path string, uiLines chan<- string) (*log.Logger, io.Closer) {
	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    logMaxSizeMB,
		MaxBackups: logMaxBackups,
		MaxAge:     logMaxAgeDays,
	}
	var out io.Writer = file
	if uiLines != nil {
		out = io.MultiWriter(file, &LineChannelWriter{lines: uiLines})
	}
	return log.New(out, "", log.Ltime|log.Lmicroseconds), file
}

// LineChannelWriter splits writes into lines and offers each one to a
// channel, dropping it when the channel is full so logging never blocks
type LineChannelWriter struct {
	lines chan<- string
}

func NewLineChannelWriter(lines chan<- string) *LineChannelWriter {
	return &LineChannelWriter{lines: lines}
}

func (w *LineChannelWriter) Write(p []byte) (int, error) {
	for _, line := range bytes.Split(bytes.TrimRight(p, "\n"), []byte{'\n'}) {
		select {
		case w.lines <- string(line):
		default:
		}
	}
	return len(p), nil
}

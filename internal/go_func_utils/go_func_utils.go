package go_func_utils

import (
	"log"
	"runtime/debug"
)

// SafeGo runs fn on a new goroutine. A panic is written to logger with its
// stack before being re-raised, because the terminal UI owns stdout and
// would otherwise hide it.
func SafeGo(logger *log.Logger, name string, fn func()) {
	go run(logger, name, fn)
}

// SafeGoDone is SafeGo with a channel that is closed once fn returns
func SafeGoDone(logger *log.Logger, name string, fn func()) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		run(logger, name, fn)
	}()
	return done
}

func run(logger *log.Logger, name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Printf("PANIC in %s: %v\n%s", name, r, debug.Stack())
			panic(r)
		}
	}()
	fn()
}

package main

import (
	"fmt"
	"os"
)

type Logger interface {
	Debug(format string, v ...any)
	Info(format string, v ...any)
	Warn(format string, v ...any)
	Error(format string, v ...any)
	Fatal(format string, v ...any)
}

type logger struct {
	level int
}

// NewLogger returns a Logger writing to stderr that drops messages more
// verbose than the given level (0=error, 1=warn, 2=info, 3=debug).
func NewLogger(level int) Logger {
	return &logger{level: level}
}

func (l *logger) printf(min int, format string, v ...any) {
	if l.level >= min {
		fmt.Fprintf(os.Stderr, format, v...)
	}
}

func (l *logger) Debug(format string, v ...any) { l.printf(3, format, v...) }
func (l *logger) Info(format string, v ...any)  { l.printf(2, format, v...) }
func (l *logger) Warn(format string, v ...any)  { l.printf(1, format, v...) }
func (l *logger) Error(format string, v ...any) { l.printf(0, format, v...) }

func (l *logger) Fatal(format string, v ...any) {
	fmt.Fprintf(os.Stderr, format, v...)
	os.Exit(1)
}

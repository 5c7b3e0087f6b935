// Copyright 2025 The DealDesk Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package log provides logging capabilities for DealDesk.
//
// A Logger dispatches printf-style events at a level to its writer, events below
// the configured level are discarded. The default logger writes to stderr.
package log

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"
)

// LevelLogger provides level-related logging functions
type LevelLogger interface {
	LevelEnabled(level Level) bool

	Trace(format string, v ...any)
	Debug(format string, v ...any)
	Info(format string, v ...any)
	Warn(format string, v ...any)
	Error(format string, v ...any)
	Fatal(format string, v ...any)
}

// calldepth is the number of stack frames between the logging call site and log()
const calldepth = 2

// LoggerImpl is the default Logger implementation, it is safe for concurrent use
type LoggerImpl struct {
	mu    sync.Mutex
	out   io.Writer
	level Level
}

// NewLogger creates a logger writing events at or above the given level to out
func NewLogger(out io.Writer, level Level) *LoggerImpl {
	return &LoggerImpl{out: out, level: level}
}

// SetLevel changes the minimum level of the logger
func (l *LoggerImpl) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// LevelEnabled returns true if the given level is enabled
func (l *LoggerImpl) LevelEnabled(level Level) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return level >= l.level
}

func (l *LoggerImpl) log(level Level, format string, v ...any) {
	if !l.LevelEnabled(level) {
		return
	}
	_, file, line, ok := runtime.Caller(calldepth)
	if !ok {
		file, line = "?", 0
	} else if idx := strings.LastIndexByte(file, '/'); idx >= 0 {
		file = file[idx+1:]
	}
	msg := fmt.Sprintf(format, v...)
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "%s %s:%d [%s] %s\n",
		time.Now().Format("2006/01/02 15:04:05"), file, line, strings.ToUpper(level.String()[:1]), msg)
}

func (l *LoggerImpl) Trace(format string, v ...any) { l.log(TRACE, format, v...) }
func (l *LoggerImpl) Debug(format string, v ...any) { l.log(DEBUG, format, v...) }
func (l *LoggerImpl) Info(format string, v ...any)  { l.log(INFO, format, v...) }
func (l *LoggerImpl) Warn(format string, v ...any)  { l.log(WARN, format, v...) }
func (l *LoggerImpl) Error(format string, v ...any) { l.log(ERROR, format, v...) }

// Fatal logs the event and exits the process
func (l *LoggerImpl) Fatal(format string, v ...any) {
	l.log(FATAL, format, v...)
	os.Exit(1)
}

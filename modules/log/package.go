// Copyright 2025 The DealDesk Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package log

import "os"

var defaultLogger = NewLogger(os.Stderr, DEFAULT)

// GetLogger returns the default logger
func GetLogger() *LoggerImpl {
	return defaultLogger
}

// SetLevel changes the minimum level of the default logger
func SetLevel(level Level) {
	defaultLogger.SetLevel(level)
}

func Trace(format string, v ...any) { defaultLogger.log(TRACE, format, v...) }
func Debug(format string, v ...any) { defaultLogger.log(DEBUG, format, v...) }
func Info(format string, v ...any)  { defaultLogger.log(INFO, format, v...) }
func Warn(format string, v ...any)  { defaultLogger.log(WARN, format, v...) }
func Error(format string, v ...any) { defaultLogger.log(ERROR, format, v...) }
func Fatal(format string, v ...any) { defaultLogger.Fatal(format, v...) }

// Copyright 2025 The DealDesk Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package db

import (
	"fmt"
	"sync/atomic"

	"code.dealdesk.io/dealdesk/modules/log"

	xormlog "xorm.io/xorm/log"
)

// XORMLogBridge a logger bridge from Logger to xorm
type XORMLogBridge struct {
	showSQL atomic.Bool
	logger  *log.LoggerImpl
}

// NewXORMLogger inits a log bridge for xorm
func NewXORMLogger(showSQL bool) xormlog.Logger {
	bridge := &XORMLogBridge{logger: log.GetLogger()}
	bridge.showSQL.Store(showSQL)
	return bridge
}

// Debug show debug log
func (l *XORMLogBridge) Debug(v ...any) {
	l.logger.Debug("%s", fmt.Sprint(v...))
}

// Debugf show debug log
func (l *XORMLogBridge) Debugf(format string, v ...any) {
	l.logger.Debug(format, v...)
}

// Error show error log
func (l *XORMLogBridge) Error(v ...any) {
	l.logger.Error("%s", fmt.Sprint(v...))
}

// Errorf show error log
func (l *XORMLogBridge) Errorf(format string, v ...any) {
	l.logger.Error(format, v...)
}

// Info show information level log
func (l *XORMLogBridge) Info(v ...any) {
	l.logger.Info("%s", fmt.Sprint(v...))
}

// Infof show information level log
func (l *XORMLogBridge) Infof(format string, v ...any) {
	l.logger.Info(format, v...)
}

// Warn show warning log
func (l *XORMLogBridge) Warn(v ...any) {
	l.logger.Warn("%s", fmt.Sprint(v...))
}

// Warnf show warning log
func (l *XORMLogBridge) Warnf(format string, v ...any) {
	l.logger.Warn(format, v...)
}

// Level get logger level
func (l *XORMLogBridge) Level() xormlog.LogLevel {
	if l.logger.LevelEnabled(log.DEBUG) {
		return xormlog.LOG_DEBUG
	}
	if l.logger.LevelEnabled(log.INFO) {
		return xormlog.LOG_INFO
	}
	if l.logger.LevelEnabled(log.WARN) {
		return xormlog.LOG_WARNING
	}
	return xormlog.LOG_ERR
}

// SetLevel set the logger level, the bridge follows the application logger instead
func (l *XORMLogBridge) SetLevel(xormlog.LogLevel) {}

// ShowSQL set if record SQL
func (l *XORMLogBridge) ShowSQL(show ...bool) {
	l.showSQL.Store(len(show) == 0 || show[0])
}

// IsShowSQL if record SQL
func (l *XORMLogBridge) IsShowSQL() bool {
	return l.showSQL.Load()
}

// Copyright 2025 The DealDesk Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package db

import (
	"context"
	"database/sql"

	"code.dealdesk.io/dealdesk/modules/setting"

	_ "github.com/go-sql-driver/mysql" // mysql driver
	_ "github.com/lib/pq"              // postgres driver
	_ "github.com/mattn/go-sqlite3"    // sqlite driver
	"xorm.io/xorm"
	"xorm.io/xorm/names"
)

// x is the main database engine, set by InitEngine
var (
	x      *xorm.Engine
	tables []any
)

// Engine represents a xorm engine or session
type Engine interface {
	Table(tableNameOrBean any) *xorm.Session
	Count(...any) (int64, error)
	Delete(...any) (int64, error)
	Exec(...any) (sql.Result, error)
	Find(any, ...any) error
	Get(beans ...any) (bool, error)
	ID(any) *xorm.Session
	In(string, ...any) *xorm.Session
	Insert(...any) (int64, error)
	Join(joinOperator string, tablename, condition any, args ...any) *xorm.Session
	SQL(any, ...any) *xorm.Session
	Where(any, ...any) *xorm.Session
	Asc(colNames ...string) *xorm.Session
	Desc(colNames ...string) *xorm.Session
	Limit(limit int, start ...int) *xorm.Session
	OrderBy(order any, args ...any) *xorm.Session
	Select(string) *xorm.Session
	Cols(...string) *xorm.Session
	Context(ctx context.Context) *xorm.Session
}

// RegisterModel registers a model to be synced by SyncAllTables
func RegisterModel(bean any) {
	tables = append(tables, bean)
}

// InitEngine opens the configured database and sets the default context
func InitEngine(ctx context.Context) error {
	driver, connStr, err := setting.DBConnStr()
	if err != nil {
		return err
	}

	engine, err := xorm.NewEngine(driver, connStr)
	if err != nil {
		return err
	}
	engine.SetMapper(names.GonicMapper{})
	engine.SetLogger(NewXORMLogger(false))
	engine.ShowSQL(false)
	engine.SetDefaultContext(ctx)

	x = engine
	DefaultContext = &Context{Context: ctx, e: x}
	return nil
}

// SyncAllTables syncs the schema of all registered models
func SyncAllTables() error {
	return x.Sync(tables...)
}

// GetMasterEngine returns the raw xorm engine, test helpers only
func GetMasterEngine() *xorm.Engine {
	return x
}

// Copyright 2025 The DealDesk Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// Database settings
var Database = struct {
	Type    string
	Host    string
	Name    string
	User    string
	Passwd  string
	SSLMode string
	Path    string
}{}

func loadDatabaseFrom(cfg *ini.File) {
	sec := cfg.Section("database")
	Database.Type = sec.Key("DB_TYPE").MustString("sqlite3")
	Database.Host = sec.Key("HOST").MustString("127.0.0.1:3306")
	Database.Name = sec.Key("NAME").MustString("dealdesk")
	Database.User = sec.Key("USER").MustString("dealdesk")
	Database.Passwd = sec.Key("PASSWD").MustString("")
	Database.SSLMode = sec.Key("SSL_MODE").MustString("disable")
	Database.Path = sec.Key("PATH").MustString("data/dealdesk.db")
}

// DBConnStr returns the driver name and connection string for the configured database
func DBConnStr() (string, string, error) {
	switch Database.Type {
	case "mysql":
		return "mysql", fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8mb4&parseTime=true",
			Database.User, Database.Passwd, Database.Host, Database.Name), nil
	case "postgres":
		return "postgres", fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
			Database.User, Database.Passwd, Database.Host, Database.Name, Database.SSLMode), nil
	case "sqlite3":
		if Database.Path == ":memory:" {
			return "sqlite3", "file::memory:?cache=shared&_busy_timeout=500", nil
		}
		return "sqlite3", fmt.Sprintf("file:%s?cache=shared&_busy_timeout=500&_txlock=immediate", Database.Path), nil
	default:
		return "", "", fmt.Errorf("unknown database type: %s", Database.Type)
	}
}

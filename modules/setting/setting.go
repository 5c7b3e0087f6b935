// Copyright 2025 The DealDesk Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package setting holds the global configuration, loaded once at startup from an
// ini file. Every section has defaults so the server can run without any file.
package setting

import (
	"os"

	"code.dealdesk.io/dealdesk/modules/log"

	"gopkg.in/ini.v1"
)

// CustomConf is the path of the configuration file in use, empty if defaults only
var CustomConf string

// Load reads the configuration file at confPath and fills every section.
// A missing file is not an error, defaults apply.
func Load(confPath string) error {
	cfg := ini.Empty()
	if confPath != "" {
		if _, err := os.Stat(confPath); err == nil {
			var err error
			cfg, err = ini.Load(confPath)
			if err != nil {
				return err
			}
			CustomConf = confPath
		} else {
			log.Warn("Config file %q not found, using defaults", confPath)
		}
	}

	loadLogFrom(cfg)
	loadServerFrom(cfg)
	loadDatabaseFrom(cfg)
	loadBoardFrom(cfg)
	return nil
}

// LoadForTest fills every section with defaults plus an in-memory database
func LoadForTest() {
	cfg := ini.Empty()
	loadLogFrom(cfg)
	loadServerFrom(cfg)
	loadDatabaseFrom(cfg)
	loadBoardFrom(cfg)
	Database.Type = "sqlite3"
	Database.Path = ":memory:"
}

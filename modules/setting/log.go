// Copyright 2025 The DealDesk Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"code.dealdesk.io/dealdesk/modules/log"

	"gopkg.in/ini.v1"
)

// Log settings
var Log = struct {
	Level string
}{
	Level: "info",
}

func loadLogFrom(cfg *ini.File) {
	sec := cfg.Section("log")
	Log.Level = sec.Key("LEVEL").MustString("info")
	log.SetLevel(log.LevelFromString(Log.Level))
}

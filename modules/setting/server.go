// Copyright 2025 The DealDesk Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// Server settings
var Server = struct {
	HTTPAddr string
	HTTPPort int
}{
	HTTPAddr: "0.0.0.0",
	HTTPPort: 3000,
}

func loadServerFrom(cfg *ini.File) {
	sec := cfg.Section("server")
	Server.HTTPAddr = sec.Key("HTTP_ADDR").MustString("0.0.0.0")
	Server.HTTPPort = sec.Key("HTTP_PORT").MustInt(3000)
}

// ListenAddr returns the "host:port" the HTTP server binds to
func ListenAddr() string {
	return fmt.Sprintf("%s:%d", Server.HTTPAddr, Server.HTTPPort)
}

// Copyright 2025 The DealDesk Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"net/http"

	"code.dealdesk.io/dealdesk/modules/log"
	"code.dealdesk.io/dealdesk/modules/setting"
	"code.dealdesk.io/dealdesk/routers/api"
	board_service "code.dealdesk.io/dealdesk/services/board"

	"github.com/urfave/cli/v2"
)

// CmdWeb starts the API server
var CmdWeb = &cli.Command{
	Name:   "web",
	Usage:  "Start the workflow engine API server",
	Action: runWeb,
}

func runWeb(ctx *cli.Context) error {
	if err := initSettings(ctx); err != nil {
		return err
	}
	if err := initDB(ctx.Context); err != nil {
		return err
	}

	engine, err := board_service.NewEngine()
	if err != nil {
		return fmt.Errorf("init engine: %w", err)
	}

	addr := setting.ListenAddr()
	log.Info("listening on %s", addr)
	return http.ListenAndServe(addr, api.Routes(engine))
}

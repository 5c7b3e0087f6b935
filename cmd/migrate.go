// Copyright 2025 The DealDesk Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"code.dealdesk.io/dealdesk/models/db"
	"code.dealdesk.io/dealdesk/modules/log"

	"github.com/urfave/cli/v2"
)

// CmdMigrate creates or updates the database schema
var CmdMigrate = &cli.Command{
	Name:   "migrate",
	Usage:  "Create or update the database schema",
	Action: runMigrate,
}

func runMigrate(ctx *cli.Context) error {
	if err := initSettings(ctx); err != nil {
		return err
	}
	if err := initDB(ctx.Context); err != nil {
		return err
	}
	if err := db.SyncAllTables(); err != nil {
		return err
	}
	log.Info("schema is up to date")
	return nil
}

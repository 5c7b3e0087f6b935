// Copyright 2025 The DealDesk Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd provides subcommands to the dealdesk binary.
package cmd

import (
	"context"

	"code.dealdesk.io/dealdesk/models/db"
	"code.dealdesk.io/dealdesk/modules/log"
	"code.dealdesk.io/dealdesk/modules/setting"

	"github.com/urfave/cli/v2"
)

func initSettings(ctx *cli.Context) error {
	if err := setting.Load(ctx.String("config")); err != nil {
		return err
	}
	log.SetLevel(log.LevelFromString(setting.Log.Level))
	return nil
}

func initDB(ctx context.Context) error {
	if err := db.InitEngine(ctx); err != nil {
		return err
	}
	return nil
}

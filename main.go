// Copyright 2025 The DealDesk Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// DealDesk is a kanban workflow engine for proposal tracking.
package main

import (
	"os"

	"code.dealdesk.io/dealdesk/cmd"
	"code.dealdesk.io/dealdesk/modules/log"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "dealdesk",
		Usage: "A kanban workflow engine for proposal tracking",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "custom/conf/app.ini",
				Usage:   "Configuration file path",
			},
		},
		Commands: []*cli.Command{
			cmd.CmdWeb,
			cmd.CmdMigrate,
		},
		DefaultCommand: cmd.CmdWeb.Name,
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal("failed to run: %v", err)
	}
}

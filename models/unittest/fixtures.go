// Copyright 2025 The DealDesk Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package unittest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"code.dealdesk.io/dealdesk/models/db"

	"gopkg.in/yaml.v3"
)

type fixtureFile struct {
	table string
	rows  []map[string]any
}

var fixtures []fixtureFile

// InitFixtures parses every yaml file of dir. The file name without extension
// is the table name.
func InitFixtures(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	fixtures = nil
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".yml") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		var rows []map[string]any
		if err := yaml.Unmarshal(data, &rows); err != nil {
			return fmt.Errorf("parse fixture %s: %w", name, err)
		}
		fixtures = append(fixtures, fixtureFile{
			table: strings.TrimSuffix(name, ".yml"),
			rows:  rows,
		})
	}

	sort.Slice(fixtures, func(i, j int) bool { return fixtures[i].table < fixtures[j].table })
	return LoadFixtures()
}

// LoadFixtures empties every fixture table and re-inserts the fixture rows
func LoadFixtures() error {
	e := db.GetMasterEngine()
	for _, f := range fixtures {
		if _, err := e.Exec(fmt.Sprintf("DELETE FROM `%s`", f.table)); err != nil {
			return fmt.Errorf("reset table %s: %w", f.table, err)
		}
		for _, row := range f.rows {
			if _, err := e.Table(f.table).Insert(row); err != nil {
				return fmt.Errorf("insert into %s: %w", f.table, err)
			}
		}
	}
	return nil
}

// Copyright 2025 The DealDesk Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package unittest provides the shared database setup of model and service
// tests: an in-memory sqlite engine plus yaml fixtures.
package unittest

import (
	"context"
	"fmt"
	"os"
	"testing"

	"code.dealdesk.io/dealdesk/models/db"
	"code.dealdesk.io/dealdesk/modules/log"
	"code.dealdesk.io/dealdesk/modules/setting"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOptions configures MainTest
type TestOptions struct {
	// FixtureDir is the directory holding the yaml fixture files
	FixtureDir string
}

// MainTest is the TestMain of every package touching the database. It opens an
// in-memory sqlite engine, syncs the schema and loads the fixtures once.
func MainTest(m *testing.M, opts *TestOptions) {
	setting.LoadForTest()
	log.SetLevel(log.ERROR)

	if err := db.InitEngine(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "init test engine: %v\n", err)
		os.Exit(1)
	}
	if err := db.SyncAllTables(); err != nil {
		fmt.Fprintf(os.Stderr, "sync test schema: %v\n", err)
		os.Exit(1)
	}
	if opts != nil && opts.FixtureDir != "" {
		if err := InitFixtures(opts.FixtureDir); err != nil {
			fmt.Fprintf(os.Stderr, "init fixtures: %v\n", err)
			os.Exit(1)
		}
	}

	os.Exit(m.Run())
}

// PrepareTestDatabase resets every fixture table to its fixture content
func PrepareTestDatabase(t *testing.T) {
	t.Helper()
	require.NoError(t, LoadFixtures())
}

// AssertExistsAndLoadBean fetches a bean matching the given conditions and
// fails the test when it does not exist
func AssertExistsAndLoadBean[T any](t *testing.T, bean *T, conditions ...any) *T {
	t.Helper()
	var exists bool
	var err error
	if len(conditions) > 0 {
		exists, err = db.GetEngine(db.DefaultContext).Where(conditions[0], conditions[1:]...).Get(bean)
	} else {
		exists, err = db.GetByBean(db.DefaultContext, bean)
	}
	require.NoError(t, err)
	require.True(t, exists, "expected to find %+v", bean)
	return bean
}

// AssertCount checks the number of rows matching the given bean
func AssertCount(t *testing.T, bean any, expected int64) {
	t.Helper()
	count, err := db.CountByBean(db.DefaultContext, bean)
	assert.NoError(t, err)
	assert.EqualValues(t, expected, count)
}

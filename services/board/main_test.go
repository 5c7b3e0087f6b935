// Copyright 2025 The DealDesk Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package board_test

import (
	"path/filepath"
	"testing"

	"code.dealdesk.io/dealdesk/models/unittest"
)

func TestMain(m *testing.M) {
	unittest.MainTest(m, &unittest.TestOptions{
		FixtureDir: filepath.Join("..", "..", "models", "fixtures"),
	})
}

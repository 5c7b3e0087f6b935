// Copyright 2025 The DealDesk Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package board

import (
	"sync"

	proposal_model "code.dealdesk.io/dealdesk/models/proposal"
)

// Revealer incrementally exposes prefixes of column membership lists so large
// columns stay cheap to render. It never reorders or filters membership, it
// only truncates.
type Revealer struct {
	mu      sync.Mutex
	batch   int
	cursors map[int64]int
}

// NewRevealer creates a paginator revealing batch proposals initially and per
// LoadMore call
func NewRevealer(batch int) *Revealer {
	if batch <= 0 {
		batch = 10
	}
	return &Revealer{
		batch:   batch,
		cursors: make(map[int64]int),
	}
}

func (r *Revealer) cursor(columnID int64) int {
	if c, ok := r.cursors[columnID]; ok {
		return c
	}
	return r.batch
}

// Visible returns the revealed prefix of the column membership
func (r *Revealer) Visible(columnID int64, members []*proposal_model.Proposal) []*proposal_model.Proposal {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.cursor(columnID)
	if c > len(members) {
		c = len(members)
	}
	return members[:c]
}

// HasMore reports whether the column has unrevealed proposals
func (r *Revealer) HasMore(columnID int64, total int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cursor(columnID) < total
}

// LoadMore reveals one more batch of the column
func (r *Revealer) LoadMore(columnID int64, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.cursor(columnID) + r.batch
	if c > total {
		c = total
	}
	r.cursors[columnID] = c
}

// LoadAll reveals the full column
func (r *Revealer) LoadAll(columnID int64, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cursors[columnID] = total
}

// Revalidate clamps the cursor of a column after its membership changed so a
// stale cursor never slices out of range. Visible already clamps on read,
// Revalidate keeps the stored cursor honest.
func (r *Revealer) Revalidate(columnID int64, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.cursors[columnID]; ok && c > total {
		r.cursors[columnID] = total
	}
}

// Reset drops all cursors, every column starts over at the initial batch
func (r *Revealer) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cursors = make(map[int64]int)
}

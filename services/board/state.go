// Copyright 2025 The DealDesk Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package board

import (
	"sync"

	proposal_model "code.dealdesk.io/dealdesk/models/proposal"
)

// stateEntry keeps the last authoritative copy of a proposal next to the
// optimistic one so a failed write can be rolled back precisely
type stateEntry struct {
	authoritative proposal_model.Proposal
	current       proposal_model.Proposal

	// version counts optimistic applies, responses for superseded versions
	// must not clobber a newer optimistic copy
	version    int64
	optimistic bool
}

// StateStore is the versioned local state container sitting between an
// optimistic move and its confirmation. Responses are merged by record id and
// write version, never by blind overwrite: second-granularity timestamps are
// not reliable enough to order a write against its own echo.
type StateStore struct {
	mu      sync.Mutex
	entries map[int64]*stateEntry
}

// NewStateStore creates an empty state store
func NewStateStore() *StateStore {
	return &StateStore{entries: make(map[int64]*stateEntry)}
}

// Seed records an authoritative copy of a proposal, e.g. freshly loaded from
// the database. The version counter of an already tracked proposal is kept.
func (s *StateStore) Seed(p *proposal_model.Proposal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[p.ID]
	if !ok {
		e = &stateEntry{}
		s.entries[p.ID] = e
	}
	e.authoritative = *p
	e.current = *p
	e.optimistic = false
}

// Get returns the current (possibly optimistic) copy of a proposal
func (s *StateStore) Get(id int64) (*proposal_model.Proposal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	p := e.current
	return &p, true
}

// ApplyOptimistic replaces the visible copy before the write confirms and
// returns the version of the write now in flight. The last authoritative copy
// is retained for rollback.
func (s *StateStore) ApplyOptimistic(p *proposal_model.Proposal) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[p.ID]
	if !ok {
		e = &stateEntry{authoritative: *p}
		s.entries[p.ID] = e
	}
	e.current = *p
	e.version++
	e.optimistic = true
	return e.version
}

// Reconcile merges the confirmed state of the write identified by version. A
// response for a superseded version is ignored while a newer optimistic copy
// is in flight, otherwise the response becomes the new authoritative state.
// The returned copy is the one callers should display.
func (s *StateStore) Reconcile(server *proposal_model.Proposal, version int64) *proposal_model.Proposal {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[server.ID]
	if !ok {
		s.entries[server.ID] = &stateEntry{
			authoritative: *server,
			current:       *server,
			version:       version,
		}
		p := *server
		return &p
	}

	if e.optimistic && version < e.version {
		p := e.current
		return &p
	}

	e.authoritative = *server
	e.current = *server
	e.optimistic = false
	p := e.current
	return &p
}

// Invalidate reverts a proposal to its last authoritative copy after a failed
// write and returns it, nil when the proposal is unknown
func (s *StateStore) Invalidate(id int64) *proposal_model.Proposal {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return nil
	}
	e.current = e.authoritative
	e.optimistic = false
	p := e.current
	return &p
}

// Forget drops a proposal from the store
func (s *StateStore) Forget(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

// Copyright 2025 The DealDesk Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package board

import (
	"context"
	"fmt"
	"sync"

	board_model "code.dealdesk.io/dealdesk/models/board"
	proposal_model "code.dealdesk.io/dealdesk/models/proposal"
	"code.dealdesk.io/dealdesk/modules/metrics"
	"code.dealdesk.io/dealdesk/modules/setting"
	"code.dealdesk.io/dealdesk/modules/util"
)

// ErrMoveInFlight is returned when a proposal already has a move being
// processed or suspended at the approval gate
type ErrMoveInFlight struct {
	ProposalID int64
}

// IsErrMoveInFlight checks if an error is a ErrMoveInFlight
func IsErrMoveInFlight(err error) bool {
	_, ok := err.(ErrMoveInFlight)
	return ok
}

func (err ErrMoveInFlight) Error() string {
	return fmt.Sprintf("proposal already has a move in flight [id: %d]", err.ProposalID)
}

func (err ErrMoveInFlight) Unwrap() error {
	return util.ErrAlreadyExist
}

// Engine orchestrates board reads and proposal transitions: resolution, the
// access gate, the approval gate, the move itself and the notifications
// around it.
type Engine struct {
	configs   *ConfigCache
	approvals *ApprovalQueue
	revealer  *Revealer
	state     *StateStore

	mu       sync.Mutex
	inFlight map[int64]bool
}

// NewEngine creates a workflow engine
func NewEngine() (*Engine, error) {
	configs, err := NewConfigCache()
	if err != nil {
		return nil, err
	}
	return &Engine{
		configs:   configs,
		approvals: NewApprovalQueue(),
		revealer:  NewRevealer(setting.Board.RevealBatchSize),
		state:     NewStateStore(),
		inFlight:  make(map[int64]bool),
	}, nil
}

func (e *Engine) acquire(proposalID int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.inFlight[proposalID] {
		return ErrMoveInFlight{ProposalID: proposalID}
	}
	e.inFlight[proposalID] = true
	return nil
}

func (e *Engine) release(proposalID int64) {
	e.mu.Lock()
	delete(e.inFlight, proposalID)
	e.mu.Unlock()
}

// MoveRequest is a user-initiated proposal transition
type MoveRequest struct {
	BoardID      int64  `json:"board_id"`
	ProposalID   int64  `json:"proposal_id"`
	DestColumnID int64  `json:"dest_column_id"`
	DestIndex    int    `json:"dest_index"`
	Actor        string `json:"actor"`
	ActorRole    string `json:"actor_role"`
}

// MoveOutcome is the result of a move request. Exactly one of the three
// branches is taken: Denied is set when the gate refused the move, Pending
// when the transition is suspended at the approval gate, Result when the move
// completed.
type MoveOutcome struct {
	Denied  *Decision        `json:"denied,omitempty"`
	Pending *PendingApproval `json:"pending,omitempty"`
	Result  *MoveResult      `json:"result,omitempty"`
}

// RequestMove validates and executes a proposal transition. A move targeting
// the proposal's current column at its current position is rejected before any
// validation work.
func (e *Engine) RequestMove(ctx context.Context, req *MoveRequest) (*MoveOutcome, error) {
	if err := e.acquire(req.ProposalID); err != nil {
		return nil, err
	}
	defer e.release(req.ProposalID)

	if e.approvals.PendingForProposal(req.ProposalID) {
		return nil, ErrMoveInFlight{ProposalID: req.ProposalID}
	}

	config, err := e.configs.Get(ctx, req.BoardID)
	if err != nil {
		return nil, err
	}
	dest, err := config.GetColumn(req.DestColumnID)
	if err != nil {
		return nil, err
	}

	p, err := proposal_model.GetProposalByID(ctx, req.ProposalID)
	if err != nil {
		return nil, err
	}
	if p.BoardID != req.BoardID {
		return nil, util.NewInvalidArgumentErrorf("proposal %d does not belong to board %d", p.ID, req.BoardID)
	}

	proposals, err := proposal_model.FindProposals(ctx, req.BoardID)
	if err != nil {
		return nil, err
	}
	res := ResolveAll(proposals, config.Columns, config.IsMaster())

	sourceID, _ := Resolve(p, config.Columns, config.IsMaster())
	if sourceID == Unassigned {
		return nil, util.NewInvalidArgumentErrorf("proposal %d resolves to no column", p.ID)
	}
	source, err := config.GetColumn(sourceID)
	if err != nil {
		return nil, err
	}

	if sourceID == dest.ID && indexOf(res.Columns[sourceID], p.ID) == req.DestIndex {
		return nil, util.NewInvalidArgumentErrorf("proposal %d is already at position %d of column %q", p.ID, req.DestIndex, dest.Title)
	}

	destMembers := res.Columns[dest.ID]
	decision := CanMove(p, source, dest, req.ActorRole, int64(len(destMembers)))
	if !decision.Allowed {
		metrics.MovesDenied.WithLabelValues(string(decision.FailedRule)).Inc()
		return &MoveOutcome{Denied: &decision}, nil
	}

	if NeedsApproval(source, dest) {
		pending := e.approvals.Suspend(p, source, dest, req.DestIndex, req.Actor)
		return &MoveOutcome{Pending: pending}, nil
	}

	result, err := MoveProposal(ctx, e.state, p, source, dest, req.DestIndex, destMembers)
	if err != nil {
		return nil, err
	}
	e.afterMove(ctx, result, source, dest)
	return &MoveOutcome{Result: result}, nil
}

// Approve decides a suspended transition in favor of the move and executes it.
// An actor without the approver role cannot decide, the transition stays
// suspended.
//
// Other proposals may have entered or left the destination while the decision
// was pending, so the proposal and the destination membership are re-resolved
// from the current board state. Only the source, destination and index of the
// suspended request are kept.
func (e *Engine) Approve(ctx context.Context, token, actorRole string) (*MoveResult, error) {
	pa, err := e.approvals.Get(token)
	if err != nil {
		return nil, err
	}
	if !CanApprove(pa.source, actorRole) {
		return nil, util.NewPermissionDeniedErrorf("role %q may not approve exits from column %q", actorRole, pa.source.Title)
	}

	p, err := proposal_model.GetProposalByID(ctx, pa.ProposalID)
	if err != nil {
		return nil, err
	}
	config, err := e.configs.Get(ctx, pa.BoardID)
	if err != nil {
		return nil, err
	}
	dest, err := config.GetColumn(pa.DestID)
	if err != nil {
		return nil, err
	}
	proposals, err := proposal_model.FindProposals(ctx, pa.BoardID)
	if err != nil {
		return nil, err
	}
	res := ResolveAll(proposals, config.Columns, config.IsMaster())

	if _, err := e.approvals.Take(token); err != nil {
		return nil, err
	}

	result, err := MoveProposal(ctx, e.state, p, pa.source, dest, pa.DestIndex, res.Columns[dest.ID])
	if err != nil {
		return nil, err
	}
	metrics.ApprovalDecisions.WithLabelValues("approved").Inc()
	e.afterMove(ctx, result, pa.source, dest)
	return result, nil
}

// Reject decides a suspended transition against the move. The proposal is
// untouched, it never left its source column.
func (e *Engine) Reject(token, actorRole string) error {
	pa, err := e.approvals.Get(token)
	if err != nil {
		return err
	}
	if !CanApprove(pa.source, actorRole) {
		return util.NewPermissionDeniedErrorf("role %q may not reject exits from column %q", actorRole, pa.source.Title)
	}
	if _, err := e.approvals.Take(token); err != nil {
		return err
	}
	metrics.ApprovalDecisions.WithLabelValues("rejected").Inc()
	return nil
}

// Cancel withdraws a suspended transition. Anyone may cancel, it has no side
// effects.
func (e *Engine) Cancel(token string) error {
	if _, err := e.approvals.Take(token); err != nil {
		return err
	}
	metrics.ApprovalDecisions.WithLabelValues("cancelled").Inc()
	return nil
}

// DraftJustification records a justification on a suspended transition
func (e *Engine) DraftJustification(token, justification string) error {
	return e.approvals.Draft(token, justification)
}

func (e *Engine) afterMove(ctx context.Context, result *MoveResult, source, dest *board_model.Column) {
	notifyMove(ctx, result.Proposal, source, dest)
	if result.Advisory != nil {
		notifyWIPLimitExceeded(ctx, dest, result.Advisory)
	}
	if result.PromptContentPromotion {
		notifyPromptContentPromotion(ctx, result.Proposal)
	}
}

// CreateProposal creates a proposal at the end of the board's initial column,
// the first non-terminal column by order
func (e *Engine) CreateProposal(ctx context.Context, boardID int64, name string) (*proposal_model.Proposal, error) {
	if name == "" {
		return nil, util.NewInvalidArgumentErrorf("proposal name must not be empty")
	}
	config, err := e.configs.Get(ctx, boardID)
	if err != nil {
		return nil, err
	}
	initial := board_model.InitialColumn(config.Columns)
	if initial == nil {
		return nil, util.NewInvalidArgumentErrorf("board %q has no non-terminal column", config.Board.Title)
	}

	proposals, err := proposal_model.FindProposals(ctx, boardID)
	if err != nil {
		return nil, err
	}
	res := ResolveAll(proposals, config.Columns, config.IsMaster())

	p := &proposal_model.Proposal{Name: name, BoardID: boardID}
	applyFieldUpdates(p, initial)
	applyChecklistOnEntry(p, initial)
	p.ManualOrder = int64(len(res.Columns[initial.ID]))

	if err := proposal_model.NewProposal(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ColumnView is a column with its revealed membership
type ColumnView struct {
	Column    *board_model.Column        `json:"column"`
	Proposals []*proposal_model.Proposal `json:"proposals"`
	Total     int                        `json:"total"`
	HasMore   bool                       `json:"has_more"`
}

// BoardView is the rendered state of a board: every proposal resolved into a
// column, membership truncated by the reveal cursors
type BoardView struct {
	Board       *board_model.Board          `json:"board"`
	Columns     []*ColumnView               `json:"columns"`
	Unassigned  []*proposal_model.Proposal  `json:"unassigned,omitempty"`
	Warnings    []board_model.ConfigWarning `json:"warnings,omitempty"`
	Diagnostics []Diagnostic                `json:"diagnostics,omitempty"`
}

// LoadBoard resolves every proposal of a board and applies the reveal cursors
func (e *Engine) LoadBoard(ctx context.Context, boardID int64) (*BoardView, error) {
	config, err := e.configs.Get(ctx, boardID)
	if err != nil {
		return nil, err
	}
	proposals, err := proposal_model.FindProposals(ctx, boardID)
	if err != nil {
		return nil, err
	}
	res := ResolveAll(proposals, config.Columns, config.IsMaster())
	if len(res.Diagnostics) > 0 {
		metrics.ResolutionDiagnostics.Add(float64(len(res.Diagnostics)))
	}

	view := &BoardView{
		Board:       config.Board,
		Columns:     make([]*ColumnView, 0, len(config.Columns)),
		Unassigned:  res.Unassigned,
		Warnings:    config.Warnings,
		Diagnostics: res.Diagnostics,
	}
	for _, column := range config.Columns {
		members := res.Columns[column.ID]
		if !config.IsMaster() && column.IsTerminal {
			members = TerminalMembers(column, proposals)
		}
		e.revealer.Revalidate(column.ID, len(members))
		view.Columns = append(view.Columns, &ColumnView{
			Column:    column,
			Proposals: e.revealer.Visible(column.ID, members),
			Total:     len(members),
			HasMore:   e.revealer.HasMore(column.ID, len(members)),
		})
	}
	return view, nil
}

// Reveal advances the reveal cursor of a column by one batch, or to the full
// membership when all is set
func (e *Engine) Reveal(ctx context.Context, boardID, columnID int64, all bool) (*ColumnView, error) {
	config, err := e.configs.Get(ctx, boardID)
	if err != nil {
		return nil, err
	}
	column, err := config.GetColumn(columnID)
	if err != nil {
		return nil, err
	}
	proposals, err := proposal_model.FindProposals(ctx, boardID)
	if err != nil {
		return nil, err
	}
	res := ResolveAll(proposals, config.Columns, config.IsMaster())
	members := res.Columns[columnID]
	if !config.IsMaster() && column.IsTerminal {
		members = TerminalMembers(column, proposals)
	}

	if all {
		e.revealer.LoadAll(columnID, len(members))
	} else {
		e.revealer.LoadMore(columnID, len(members))
	}
	return &ColumnView{
		Column:    column,
		Proposals: e.revealer.Visible(columnID, members),
		Total:     len(members),
		HasMore:   e.revealer.HasMore(columnID, len(members)),
	}, nil
}

// AddColumn creates a column and invalidates the cached board configuration
func (e *Engine) AddColumn(ctx context.Context, column *board_model.Column) error {
	if err := board_model.NewColumn(ctx, column); err != nil {
		return err
	}
	e.configs.Invalidate(column.BoardID)
	return nil
}

// EditColumn updates a column and invalidates the cached board configuration
func (e *Engine) EditColumn(ctx context.Context, column *board_model.Column) error {
	if err := board_model.UpdateColumn(ctx, column); err != nil {
		return err
	}
	e.configs.Invalidate(column.BoardID)
	return nil
}

// RemoveColumn deletes a column and invalidates the cached board configuration
func (e *Engine) RemoveColumn(ctx context.Context, boardID, columnID int64) error {
	if err := board_model.DeleteColumnByID(ctx, columnID); err != nil {
		return err
	}
	e.configs.Invalidate(boardID)
	return nil
}

// ReorderColumns applies a new column ordering and invalidates the cached
// board configuration
func (e *Engine) ReorderColumns(ctx context.Context, b *board_model.Board, sortedColumnIDs map[int64]int64) error {
	if err := board_model.MoveColumnsOnBoard(ctx, b, sortedColumnIDs); err != nil {
		return err
	}
	e.configs.Invalidate(b.ID)
	return nil
}

// CompleteChecklistItem marks a checklist item of a proposal completed for the
// column it currently resolves to and recomputes the action-required flag
func (e *Engine) CompleteChecklistItem(ctx context.Context, boardID, proposalID int64, itemID string) (*proposal_model.Proposal, error) {
	config, err := e.configs.Get(ctx, boardID)
	if err != nil {
		return nil, err
	}
	p, err := proposal_model.GetProposalByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	columnID, _ := Resolve(p, config.Columns, config.IsMaster())
	if columnID == Unassigned {
		return nil, util.NewInvalidArgumentErrorf("proposal %d resolves to no column", p.ID)
	}
	column, err := config.GetColumn(columnID)
	if err != nil {
		return nil, err
	}

	found := false
	for _, item := range column.ChecklistItems {
		if item.ID == itemID {
			found = true
			break
		}
	}
	if !found {
		return nil, util.NewInvalidArgumentErrorf("column %q has no checklist item %q", column.Title, itemID)
	}

	p.CompleteChecklistItem(columnID, itemID)
	p.ActionRequired = IsActionRequired(p, column)
	p.ActionRequiredDesc = ActionRequiredDescription(p, column)
	if err := proposal_model.UpdateProposalCols(ctx, p, "checklist_status", "action_required", "action_required_desc"); err != nil {
		return nil, err
	}
	return p, nil
}

func indexOf(proposals []*proposal_model.Proposal, id int64) int {
	for i, p := range proposals {
		if p.ID == id {
			return i
		}
	}
	return -1
}

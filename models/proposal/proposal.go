// Copyright 2025 The DealDesk Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package proposal

import (
	"context"
	"fmt"

	"code.dealdesk.io/dealdesk/models/db"
	"code.dealdesk.io/dealdesk/modules/timeutil"
	"code.dealdesk.io/dealdesk/modules/util"

	"xorm.io/builder"
)

// ItemState is the completion state of one checklist item for one proposal
type ItemState struct {
	Completed   bool               `json:"completed"`
	CompletedAt timeutil.TimeStamp `json:"completed_at,omitempty"`
}

// ChecklistStatus maps column id -> checklist item id -> completion state.
// State for columns the proposal has left is kept, never deleted.
type ChecklistStatus map[int64]map[string]ItemState

// Proposal is a unit of work moving through a board
type Proposal struct {
	ID      int64 `xorm:"pk autoincr"`
	Name    string
	BoardID int64 `xorm:"INDEX NOT NULL"`

	Status Status `xorm:"VARCHAR(20) INDEX NOT NULL"`

	// CurrentPhase is only meaningful while the proposal sits in a locked-phase column
	CurrentPhase Phase `xorm:"NOT NULL DEFAULT 0"`

	// CustomStageID references the column id for custom and locked-phase columns, 0 when unset
	CustomStageID int64 `xorm:"INDEX NOT NULL DEFAULT 0"`

	// ManualOrder is the explicit position among siblings inside the assigned column
	ManualOrder int64 `xorm:"NOT NULL DEFAULT 0"`

	ChecklistStatus ChecklistStatus `xorm:"TEXT json"`

	// ActionRequired is derived from the destination column checklist, never authored directly
	ActionRequired     bool
	ActionRequiredDesc string `xorm:"TEXT"`

	CreatedUnix timeutil.TimeStamp `xorm:"INDEX created"`
	UpdatedUnix timeutil.TimeStamp `xorm:"INDEX updated"`
}

func init() {
	db.RegisterModel(new(Proposal))
}

// ErrProposalNotExist represents a "ProposalNotExist" kind of error.
type ErrProposalNotExist struct {
	ID int64
}

// IsErrProposalNotExist checks if an error is a ErrProposalNotExist
func IsErrProposalNotExist(err error) bool {
	_, ok := err.(ErrProposalNotExist)
	return ok
}

func (err ErrProposalNotExist) Error() string {
	return fmt.Sprintf("proposal does not exist [id: %d]", err.ID)
}

func (err ErrProposalNotExist) Unwrap() error {
	return util.ErrNotExist
}

// NewProposal creates a proposal on a board
func NewProposal(ctx context.Context, p *Proposal) error {
	if !IsStatusValid(p.Status) {
		return util.NewInvalidArgumentErrorf("proposal status %q is not valid", p.Status)
	}
	if !IsPhaseValid(p.CurrentPhase) {
		return util.NewInvalidArgumentErrorf("proposal phase %d is not valid", p.CurrentPhase)
	}
	if p.ChecklistStatus == nil {
		p.ChecklistStatus = ChecklistStatus{}
	}
	return db.Insert(ctx, p)
}

// GetProposalByID returns the proposal with the given id
func GetProposalByID(ctx context.Context, id int64) (*Proposal, error) {
	p := new(Proposal)
	has, err := db.GetEngine(ctx).ID(id).Get(p)
	if err != nil {
		return nil, err
	} else if !has {
		return nil, ErrProposalNotExist{ID: id}
	}
	return p, nil
}

// GetProposalsByIDs returns the proposals with the given ids
func GetProposalsByIDs(ctx context.Context, ids []int64) ([]*Proposal, error) {
	proposals := make([]*Proposal, 0, len(ids))
	return proposals, db.GetEngine(ctx).Where(builder.In("id", ids)).Find(&proposals)
}

// FindProposals returns all proposals of a board ordered by manual order
func FindProposals(ctx context.Context, boardID int64) ([]*Proposal, error) {
	proposals := make([]*Proposal, 0, 10)
	return proposals, db.GetEngine(ctx).
		Where("board_id=?", boardID).
		OrderBy("manual_order, id").
		Find(&proposals)
}

// UpdateProposalCols updates the given columns of a proposal
func UpdateProposalCols(ctx context.Context, p *Proposal, cols ...string) error {
	_, err := db.GetEngine(ctx).ID(p.ID).Cols(cols...).Update(p)
	return err
}

// UpdateProposalOrder persists only the manual order of a proposal
func UpdateProposalOrder(ctx context.Context, id, manualOrder int64) error {
	_, err := db.Exec(ctx, "UPDATE `proposal` SET manual_order=? WHERE id=?", manualOrder, id)
	return err
}

// DeleteProposalByID removes a proposal. The workflow engine never calls this,
// deletion belongs to the surrounding workspace.
func DeleteProposalByID(ctx context.Context, id int64) error {
	_, err := db.GetEngine(ctx).ID(id).Delete(new(Proposal))
	return err
}

// ColumnState returns the checklist state recorded for a column, nil when the
// proposal never entered it
func (p *Proposal) ColumnState(columnID int64) map[string]ItemState {
	if p.ChecklistStatus == nil {
		return nil
	}
	return p.ChecklistStatus[columnID]
}

// EnsureColumnState initializes empty checklist state for a column if absent.
// Existing partial progress is retained, re-entering a column must not reset it.
func (p *Proposal) EnsureColumnState(columnID int64) {
	if p.ChecklistStatus == nil {
		p.ChecklistStatus = ChecklistStatus{}
	}
	if _, ok := p.ChecklistStatus[columnID]; !ok {
		p.ChecklistStatus[columnID] = map[string]ItemState{}
	}
}

// CompleteChecklistItem marks one checklist item as completed for a column
func (p *Proposal) CompleteChecklistItem(columnID int64, itemID string) {
	p.EnsureColumnState(columnID)
	p.ChecklistStatus[columnID][itemID] = ItemState{
		Completed:   true,
		CompletedAt: timeutil.TimeStampNow(),
	}
}

// Copyright 2025 The DealDesk Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package board

import (
	"context"
	"fmt"

	"code.dealdesk.io/dealdesk/models/db"
	"code.dealdesk.io/dealdesk/models/proposal"
	"code.dealdesk.io/dealdesk/modules/timeutil"
	"code.dealdesk.io/dealdesk/modules/util"
)

// Board owns an ordered list of columns and decides which assignment
// algorithm applies to it
type Board struct {
	ID          int64  `xorm:"pk autoincr"`
	Title       string `xorm:"INDEX NOT NULL"`
	Description string `xorm:"TEXT"`

	// OwnerID is the organization the board belongs to
	OwnerID int64 `xorm:"INDEX NOT NULL"`

	// BoardType matches proposals to this board by category
	BoardType string `xorm:"VARCHAR(50) INDEX"`

	// IsMaster switches column assignment to the status fan-in algorithm
	IsMaster bool `xorm:"NOT NULL DEFAULT false"`

	CollapsedColumnIDs []int64 `xorm:"'collapsed_column_ids' TEXT json"`

	CreatedUnix timeutil.TimeStamp `xorm:"INDEX created"`
	UpdatedUnix timeutil.TimeStamp `xorm:"INDEX updated"`
}

func init() {
	db.RegisterModel(new(Board))
}

// ErrBoardNotExist represents a "BoardNotExist" kind of error.
type ErrBoardNotExist struct {
	ID int64
}

// IsErrBoardNotExist checks if an error is a ErrBoardNotExist
func IsErrBoardNotExist(err error) bool {
	_, ok := err.(ErrBoardNotExist)
	return ok
}

func (err ErrBoardNotExist) Error() string {
	return fmt.Sprintf("board does not exist [id: %d]", err.ID)
}

func (err ErrBoardNotExist) Unwrap() error {
	return util.ErrNotExist
}

// NewBoard creates a new board
func NewBoard(ctx context.Context, b *Board) error {
	if b.Title == "" {
		return util.NewInvalidArgumentErrorf("board title must not be empty")
	}
	return db.Insert(ctx, b)
}

// GetBoardByID returns the board with the given id
func GetBoardByID(ctx context.Context, id int64) (*Board, error) {
	b := new(Board)
	has, err := db.GetEngine(ctx).ID(id).Get(b)
	if err != nil {
		return nil, err
	} else if !has {
		return nil, ErrBoardNotExist{ID: id}
	}
	return b, nil
}

// FindBoards returns all boards of an owner
func FindBoards(ctx context.Context, ownerID int64) ([]*Board, error) {
	boards := make([]*Board, 0, 5)
	return boards, db.GetEngine(ctx).
		Where("owner_id=?", ownerID).
		OrderBy("id").
		Find(&boards)
}

// UpdateBoard updates title, description and collapsed columns of a board
func UpdateBoard(ctx context.Context, b *Board) error {
	_, err := db.GetEngine(ctx).ID(b.ID).Cols(
		"title",
		"description",
		"collapsed_column_ids",
	).Update(b)
	return err
}

// DeleteBoardByID deletes a board together with its columns. It is refused
// while any proposal still references the board.
func DeleteBoardByID(ctx context.Context, id int64) error {
	return db.AutoTx(ctx, func(ctx context.Context) error {
		b, err := GetBoardByID(ctx, id)
		if err != nil {
			if IsErrBoardNotExist(err) {
				return nil
			}
			return err
		}

		count, err := db.CountByBean(ctx, &proposal.Proposal{BoardID: b.ID})
		if err != nil {
			return err
		}
		if count > 0 {
			return util.NewInvalidArgumentErrorf("cannot delete board %d: %d proposals still assigned", b.ID, count)
		}

		if _, err := db.DeleteByBean(ctx, &Column{BoardID: b.ID}); err != nil {
			return err
		}
		_, err = db.GetEngine(ctx).ID(b.ID).Delete(new(Board))
		return err
	})
}

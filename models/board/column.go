// Copyright 2025 The DealDesk Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package board

import (
	"context"
	"errors"
	"fmt"

	"code.dealdesk.io/dealdesk/models/db"
	"code.dealdesk.io/dealdesk/models/proposal"
	"code.dealdesk.io/dealdesk/modules/setting"
	"code.dealdesk.io/dealdesk/modules/timeutil"
	"code.dealdesk.io/dealdesk/modules/util"
)

type (
	// ColumnKind decides how the column claims proposals and what a move into it does
	ColumnKind uint8

	// WIPLimitKind decides whether an exceeded WIP limit denies a move or only warns
	WIPLimitKind uint8

	// ColumnList is the ordered column list of one board
	ColumnList []*Column
)

const (
	// ColumnKindLockedPhase claims proposals by their locked workflow phase
	ColumnKindLockedPhase ColumnKind = iota

	// ColumnKindCustomStage claims proposals by an explicit stage reference
	ColumnKindCustomStage

	// ColumnKindDefaultStatus claims proposals by a single status
	ColumnKindDefaultStatus

	// ColumnKindMasterStatus claims proposals by a list of statuses, master boards only
	ColumnKindMasterStatus
)

const (
	WIPLimitSoft WIPLimitKind = iota
	WIPLimitHard
)

// IsColumnKindValid checks if the column kind is valid
func IsColumnKindValid(k ColumnKind) bool {
	switch k {
	case ColumnKindLockedPhase, ColumnKindCustomStage, ColumnKindDefaultStatus, ColumnKindMasterStatus:
		return true
	default:
		return false
	}
}

// Column is one pipeline stage of a board
type Column struct {
	ID      int64 `xorm:"pk autoincr"`
	BoardID int64 `xorm:"INDEX NOT NULL"`
	Title   string
	Sorting int64 `xorm:"NOT NULL DEFAULT 0"`

	Kind ColumnKind `xorm:"NOT NULL DEFAULT 0"`

	// PhaseMapping is set iff Kind is ColumnKindLockedPhase
	PhaseMapping proposal.Phase `xorm:"NOT NULL DEFAULT 0"`

	// DefaultStatusMapping is set iff Kind is ColumnKindDefaultStatus
	DefaultStatusMapping proposal.Status `xorm:"VARCHAR(20)"`

	// StatusMapping is set iff Kind is ColumnKindMasterStatus, order matters:
	// moving into the column assigns the first entry
	StatusMapping []proposal.Status `xorm:"TEXT json"`

	// IsLocked marks a system column, it can never be renamed, reordered or deleted
	IsLocked bool `xorm:"NOT NULL DEFAULT false"`

	// IsTerminal marks a final outcome column, shown board-wide by status match
	IsTerminal bool `xorm:"NOT NULL DEFAULT false"`

	WIPLimit     int64        `xorm:"'wip_limit' NOT NULL DEFAULT 0"`
	WIPLimitKind WIPLimitKind `xorm:"'wip_limit_kind' NOT NULL DEFAULT 0"`

	// Role allow-lists, empty means unrestricted
	DragFromRoles []string `xorm:"TEXT json"`
	DragToRoles   []string `xorm:"TEXT json"`

	RequiresApprovalToExit bool     `xorm:"NOT NULL DEFAULT false"`
	ApproverRoles          []string `xorm:"TEXT json"`

	ChecklistItems []ChecklistItem `xorm:"TEXT json"`

	CreatedUnix timeutil.TimeStamp `xorm:"INDEX created"`
	UpdatedUnix timeutil.TimeStamp `xorm:"INDEX updated"`
}

// TableName returns the real table name, "column" alone would collide with the
// SQL keyword on some dialects
func (Column) TableName() string {
	return "board_column"
}

func init() {
	db.RegisterModel(new(Column))
}

// ErrColumnNotExist represents a "ColumnNotExist" kind of error.
type ErrColumnNotExist struct {
	ColumnID int64
}

// IsErrColumnNotExist checks if an error is a ErrColumnNotExist
func IsErrColumnNotExist(err error) bool {
	_, ok := err.(ErrColumnNotExist)
	return ok
}

func (err ErrColumnNotExist) Error() string {
	return fmt.Sprintf("column does not exist [id: %d]", err.ColumnID)
}

func (err ErrColumnNotExist) Unwrap() error {
	return util.ErrNotExist
}

// HasHardWIPLimit returns true if the column denies moves once full
func (c *Column) HasHardWIPLimit() bool {
	return c.WIPLimitKind == WIPLimitHard && c.WIPLimit > 0
}

// HasSoftWIPLimit returns true if the column warns once full
func (c *Column) HasSoftWIPLimit() bool {
	return c.WIPLimitKind == WIPLimitSoft && c.WIPLimit > 0
}

// NumProposals returns how many proposals currently reference this column in
// the database. Locked-phase and custom columns are referenced by stage id,
// status-mapped columns by matching status.
func (c *Column) NumProposals(ctx context.Context) (int64, error) {
	sess := db.GetEngine(ctx).Table("proposal").Where("board_id=?", c.BoardID)
	switch c.Kind {
	case ColumnKindLockedPhase, ColumnKindCustomStage:
		return sess.And("custom_stage_id=?", c.ID).Count()
	case ColumnKindDefaultStatus:
		return sess.And("custom_stage_id=0").And("status=?", c.DefaultStatusMapping).Count()
	case ColumnKindMasterStatus:
		if len(c.StatusMapping) == 0 {
			return 0, nil
		}
		statuses := make([]any, 0, len(c.StatusMapping))
		for _, s := range c.StatusMapping {
			statuses = append(statuses, s)
		}
		return sess.In("status", statuses...).Count()
	default:
		return 0, fmt.Errorf("unknown column kind %d", c.Kind)
	}
}

// NewColumn appends a column to a board
func NewColumn(ctx context.Context, column *Column) error {
	res := struct {
		MaxSorting  int64
		ColumnCount int64
	}{}
	if _, err := db.GetEngine(ctx).Select("max(sorting) as max_sorting, count(*) as column_count").
		Table("board_column").Where("board_id=?", column.BoardID).Get(&res); err != nil {
		return err
	}
	if res.ColumnCount >= int64(setting.Board.MaxColumns) {
		return fmt.Errorf("NewColumn: maximum number of columns reached")
	}
	column.Sorting = util.Iif(res.ColumnCount > 0, res.MaxSorting+1, 0)
	if err := validateColumnShape(column); err != nil {
		return err
	}
	return db.Insert(ctx, column)
}

// GetColumn fetches one column
func GetColumn(ctx context.Context, columnID int64) (*Column, error) {
	column := new(Column)
	has, err := db.GetEngine(ctx).ID(columnID).Get(column)
	if err != nil {
		return nil, err
	} else if !has {
		return nil, ErrColumnNotExist{ColumnID: columnID}
	}
	return column, nil
}

// GetColumns fetches all columns of a board in board order
func (b *Board) GetColumns(ctx context.Context) (ColumnList, error) {
	columns := make([]*Column, 0, 5)
	if err := db.GetEngine(ctx).Where("board_id=?", b.ID).OrderBy("sorting, id").Find(&columns); err != nil {
		return nil, err
	}
	return columns, nil
}

// GetColumnsByIDs fetches the given columns of a board in board order
func GetColumnsByIDs(ctx context.Context, boardID int64, columnIDs []int64) (ColumnList, error) {
	columns := make([]*Column, 0, 5)
	if err := db.GetEngine(ctx).
		Where("board_id=?", boardID).
		In("id", columnIDs).
		OrderBy("sorting").Find(&columns); err != nil {
		return nil, err
	}
	return columns, nil
}

// UpdateColumn updates title, limits, roles and checklist template of a column.
// Renaming a locked column is refused.
func UpdateColumn(ctx context.Context, column *Column) error {
	current, err := GetColumn(ctx, column.ID)
	if err != nil {
		return err
	}
	if current.IsLocked && column.Title != current.Title {
		return util.NewPermissionDeniedErrorf("column %q is locked and cannot be renamed", current.Title)
	}
	if err := validateColumnShape(column); err != nil {
		return err
	}
	_, err = db.GetEngine(ctx).ID(column.ID).Cols(
		"title",
		"wip_limit",
		"wip_limit_kind",
		"drag_from_roles",
		"drag_to_roles",
		"requires_approval_to_exit",
		"approver_roles",
		"checklist_items",
	).Update(column)
	return err
}

// DeleteColumnByID removes a column. Locked columns and columns still holding
// proposals are refused.
func DeleteColumnByID(ctx context.Context, columnID int64) error {
	return db.WithTx(ctx, func(ctx context.Context) error {
		column, err := GetColumn(ctx, columnID)
		if err != nil {
			if IsErrColumnNotExist(err) {
				return nil
			}
			return err
		}

		if column.IsLocked {
			return util.NewPermissionDeniedErrorf("column %q is locked and cannot be deleted", column.Title)
		}

		count, err := column.NumProposals(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			return util.NewInvalidArgumentErrorf("cannot delete column %q: %d proposals still assigned", column.Title, count)
		}

		_, err = db.GetEngine(ctx).ID(column.ID).Delete(new(Column))
		return err
	})
}

// MoveColumnsOnBoard reorders the columns of a board from a map of
// sorting -> column id. Locked columns may not change position.
func MoveColumnsOnBoard(ctx context.Context, b *Board, sortedColumnIDs map[int64]int64) error {
	return db.WithTx(ctx, func(ctx context.Context) error {
		sess := db.GetEngine(ctx)
		columnIDs := util.ValuesOfMap(sortedColumnIDs)
		movedColumns, err := GetColumnsByIDs(ctx, b.ID, columnIDs)
		if err != nil {
			return err
		}
		if len(movedColumns) != len(sortedColumnIDs) {
			return errors.New("some columns do not exist")
		}

		for _, column := range movedColumns {
			if column.BoardID != b.ID {
				return fmt.Errorf("column[%d]'s boardID is not equal to board's ID [%d]", column.ID, b.ID)
			}
		}

		for sorting, columnID := range sortedColumnIDs {
			for _, column := range movedColumns {
				if column.ID == columnID && column.IsLocked && column.Sorting != sorting {
					return util.NewPermissionDeniedErrorf("column %q is locked and cannot be reordered", column.Title)
				}
			}
			if _, err := sess.Exec("UPDATE `board_column` SET sorting=? WHERE id=?", sorting, columnID); err != nil {
				return err
			}
		}
		return nil
	})
}

// Copyright 2025 The DealDesk Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package board

import (
	"context"

	board_model "code.dealdesk.io/dealdesk/models/board"
	proposal_model "code.dealdesk.io/dealdesk/models/proposal"
	"code.dealdesk.io/dealdesk/modules/log"
	"code.dealdesk.io/dealdesk/modules/metrics"
)

// Notifier receives advisory events from the move engine. Notifications are
// fire-and-forget, they never block or roll back a transition.
type Notifier interface {
	MoveProposal(ctx context.Context, p *proposal_model.Proposal, source, dest *board_model.Column)
	WIPLimitExceeded(ctx context.Context, column *board_model.Column, advisory *Advisory)
	PromptContentPromotion(ctx context.Context, p *proposal_model.Proposal)
}

// NullNotifier implements Notifier with no-ops, embed it to implement only
// some events
type NullNotifier struct{}

func (NullNotifier) MoveProposal(context.Context, *proposal_model.Proposal, *board_model.Column, *board_model.Column) {
}
func (NullNotifier) WIPLimitExceeded(context.Context, *board_model.Column, *Advisory) {}
func (NullNotifier) PromptContentPromotion(context.Context, *proposal_model.Proposal) {}

var notifiers []Notifier

// RegisterNotifier providers method to receive notify messages
func RegisterNotifier(notifier Notifier) {
	notifiers = append(notifiers, notifier)
}

func notifyMove(ctx context.Context, p *proposal_model.Proposal, source, dest *board_model.Column) {
	for _, notifier := range notifiers {
		notifier.MoveProposal(ctx, p, source, dest)
	}
}

func notifyWIPLimitExceeded(ctx context.Context, column *board_model.Column, advisory *Advisory) {
	for _, notifier := range notifiers {
		notifier.WIPLimitExceeded(ctx, column, advisory)
	}
}

func notifyPromptContentPromotion(ctx context.Context, p *proposal_model.Proposal) {
	for _, notifier := range notifiers {
		notifier.PromptContentPromotion(ctx, p)
	}
}

// logNotifier writes advisory events to the application log
type logNotifier struct {
	NullNotifier
}

func (logNotifier) MoveProposal(_ context.Context, p *proposal_model.Proposal, source, dest *board_model.Column) {
	log.Info("proposal %d moved from %q to %q", p.ID, source.Title, dest.Title)
	metrics.MovesCompleted.Inc()
}

func (logNotifier) WIPLimitExceeded(_ context.Context, column *board_model.Column, advisory *Advisory) {
	log.Warn("column %q over its soft WIP limit: %d/%d", column.Title, advisory.Current, advisory.Limit)
	metrics.SoftLimitAdvisories.Inc()
}

func (logNotifier) PromptContentPromotion(_ context.Context, p *proposal_model.Proposal) {
	log.Info("proposal %d won, prompting content promotion", p.ID)
	metrics.ContentPromotionPrompts.Inc()
}

func init() {
	RegisterNotifier(logNotifier{})
}

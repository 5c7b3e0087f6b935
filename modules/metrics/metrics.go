// Copyright 2025 The DealDesk Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package metrics exposes Prometheus counters for the workflow engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MovesCompleted counts successful proposal transitions
	MovesCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "dealdesk",
		Subsystem: "board",
		Name:      "moves_completed_total",
		Help:      "Number of completed proposal moves.",
	})

	// MovesDenied counts moves denied by the access and limit gate, by rule
	MovesDenied = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dealdesk",
		Subsystem: "board",
		Name:      "moves_denied_total",
		Help:      "Number of proposal moves denied by the gate.",
	}, []string{"rule"})

	// ApprovalDecisions counts approval gate outcomes
	ApprovalDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dealdesk",
		Subsystem: "board",
		Name:      "approval_decisions_total",
		Help:      "Number of approval gate decisions.",
	}, []string{"decision"})

	// ResolutionDiagnostics counts resolver warnings
	ResolutionDiagnostics = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "dealdesk",
		Subsystem: "board",
		Name:      "resolution_diagnostics_total",
		Help:      "Number of column resolution diagnostics.",
	})

	// SoftLimitAdvisories counts soft WIP limit advisories
	SoftLimitAdvisories = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "dealdesk",
		Subsystem: "board",
		Name:      "soft_limit_advisories_total",
		Help:      "Number of soft WIP limit advisories.",
	})

	// ContentPromotionPrompts counts submitted-to-won promotion prompts
	ContentPromotionPrompts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "dealdesk",
		Subsystem: "board",
		Name:      "content_promotion_prompts_total",
		Help:      "Number of content promotion prompts emitted.",
	})
)

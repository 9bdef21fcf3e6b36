// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

// Package task manages a company's operational to-do list.
//
// Tasks are lightweight work reminders ("Restock shelf 3") with an urgency
// level, shared by everyone in the company.
package task

import "time"

// Urgency levels, lowest to highest.
const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
)

// Urgencies lists the accepted urgency values for validation.
var Urgencies = []string{UrgencyLow, UrgencyMedium, UrgencyHigh}

// Task is a single work item on a company's board.
type Task struct {
	ID      string `json:"id"`
	Company string `json:"company"`

	Title       string `json:"title"`
	Description string `json:"description"`
	Urgency     string `json:"urgency"`

	// CreatedBy is the uid of the user who created the task.
	CreatedBy string `json:"createdBy"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

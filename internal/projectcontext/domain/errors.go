package domain

import "errors"

var (
	// ErrNotFound message is part of the API contract.
	ErrNotFound = errors.New("No project context found")

	ErrFirstContextIncomplete = errors.New("First context creation requires team_size, expected_users, and timeline_months")
	ErrNonPositiveField       = errors.New("team_size, expected_users, and timeline_months must be positive")
)

package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// The failure messages below are part of the API contract and must not
// change: callers are told exactly which setup step is missing.
var ErrNoProjectContext = errors.New("No project context found. Please set project context first.")

var ErrNonPositiveSnapshotField = errors.New("team_size_at_decision, expected_users_at_decision, and timeline_at_decision must be positive")

// SnapshotNotFoundError reports that a decision has no snapshot to evaluate
// against.
type SnapshotNotFoundError struct {
	DecisionID uuid.UUID
}

func (e *SnapshotNotFoundError) Error() string {
	return fmt.Sprintf("No context snapshot found for decision %s. Please create a snapshot first.", e.DecisionID)
}

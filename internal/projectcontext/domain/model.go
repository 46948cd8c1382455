package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProjectContext is the current state of the project. Only the latest row
// (by updated_at) is meaningful; the drift engine always evaluates against it.
type ProjectContext struct {
	ID             uuid.UUID `json:"id"`
	TeamSize       int       `json:"team_size"`
	ExpectedUsers  int       `json:"expected_users"`
	TimelineMonths int       `json:"timeline_months"`
	Constraints    *string   `json:"constraints,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UpsertContextRequest merges into the latest context row, or creates the
// first one. On first creation all three numeric fields must be present.
type UpsertContextRequest struct {
	TeamSize       *int    `json:"team_size"`
	ExpectedUsers  *int    `json:"expected_users"`
	TimelineMonths *int    `json:"timeline_months"`
	Constraints    *string `json:"constraints"`
}

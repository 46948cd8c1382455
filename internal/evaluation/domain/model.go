package domain

import (
	"time"

	"github.com/google/uuid"
)

// ContextSnapshot is an immutable capture of the project context at the
// moment a decision was made or reaffirmed. A decision may accumulate
// several; the drift engine always evaluates against the newest one.
type ContextSnapshot struct {
	ID                      uuid.UUID `json:"id"`
	DecisionID              uuid.UUID `json:"decision_id"`
	TeamSizeAtDecision      int       `json:"team_size_at_decision"`
	ExpectedUsersAtDecision int       `json:"expected_users_at_decision"`
	TimelineAtDecision      int       `json:"timeline_at_decision"`
	Assumptions             *string   `json:"assumptions,omitempty"`
	CreatedAt               time.Time `json:"created_at"`
}

// Evaluation is the immutable result of one drift computation. Evaluations
// are append-only per decision.
type Evaluation struct {
	ID          uuid.UUID `json:"id"`
	DecisionID  uuid.UUID `json:"decision_id"`
	DriftScore  int       `json:"drift_score"`
	RiskLevel   RiskLevel `json:"risk_level"`
	Explanation string    `json:"explanation"`
	EvaluatedAt time.Time `json:"evaluated_at"`
}

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

func (l RiskLevel) Valid() bool {
	switch l {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// CreateSnapshotRequest carries the fields needed to capture a snapshot.
type CreateSnapshotRequest struct {
	TeamSizeAtDecision      int
	ExpectedUsersAtDecision int
	TimelineAtDecision      int
	Assumptions             *string
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Decision is an engineering decision tracked against the project context
// it was made under.
type Decision struct {
	ID              uuid.UUID       `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	DecisionType    DecisionType    `json:"decision_type"`
	ConfidenceLevel ConfidenceLevel `json:"confidence_level"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type DecisionType string

const (
	TypeArchitecture DecisionType = "architecture"
	TypeTechnology   DecisionType = "technology"
	TypeProcess      DecisionType = "process"
)

func (t DecisionType) Valid() bool {
	switch t {
	case TypeArchitecture, TypeTechnology, TypeProcess:
		return true
	}
	return false
}

type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

func (l ConfidenceLevel) Valid() bool {
	switch l {
	case ConfidenceLow, ConfidenceMedium, ConfidenceHigh:
		return true
	}
	return false
}

// CreateDecisionRequest carries the fields needed to record a decision.
type CreateDecisionRequest struct {
	Title           string
	Description     string
	DecisionType    DecisionType
	ConfidenceLevel ConfidenceLevel
}

// UpdateDecisionRequest carries a partial update; nil fields are left untouched.
type UpdateDecisionRequest struct {
	Title           *string
	Description     *string
	DecisionType    *DecisionType
	ConfidenceLevel *ConfidenceLevel
}

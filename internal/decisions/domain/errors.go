package domain

import (
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrInvalidTitle           = fmt.Errorf("title must be between 1 and 255 characters")
	ErrInvalidDescription     = fmt.Errorf("description must not be empty")
	ErrInvalidDecisionType    = fmt.Errorf("decision_type must be one of: architecture, technology, process")
	ErrInvalidConfidenceLevel = fmt.Errorf("confidence_level must be one of: low, medium, high")
)

// NotFoundError reports a missing decision. Its message is part of the API
// contract and must not change.
type NotFoundError struct {
	ID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Decision with id %s not found", e.ID)
}

package http

import "github.com/decisio-app/decisio-backend/internal/decisions/domain"

type createDecisionReq struct {
	Title           string                 `json:"title"`
	Description     string                 `json:"description"`
	DecisionType    domain.DecisionType    `json:"decision_type"`
	ConfidenceLevel domain.ConfidenceLevel `json:"confidence_level"`
}

type updateDecisionReq struct {
	Title           *string                 `json:"title"`
	Description     *string                 `json:"description"`
	DecisionType    *domain.DecisionType    `json:"decision_type"`
	ConfidenceLevel *domain.ConfidenceLevel `json:"confidence_level"`
}

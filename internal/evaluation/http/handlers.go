package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	decisionsdomain "github.com/decisio-app/decisio-backend/internal/decisions/domain"
	"github.com/decisio-app/decisio-backend/internal/evaluation/domain"
	"github.com/decisio-app/decisio-backend/internal/evaluation/service"
)

type Handler struct {
	svc *service.EvaluationService
}

// Register mounts the snapshot and evaluation routes onto the decisions
// group: they are sub-resources of a decision.
func Register(rg *gin.RouterGroup, svc *service.EvaluationService) {
	h := &Handler{svc: svc}

	rg.POST("/:id/snapshot", h.createSnapshot)
	rg.GET("/:id/snapshots", h.listSnapshots)
	rg.POST("/:id/evaluate", h.evaluate)
	rg.GET("/:id/evaluations", h.listEvaluations)
}

type createSnapshotReq struct {
	TeamSizeAtDecision      int     `json:"team_size_at_decision"`
	ExpectedUsersAtDecision int     `json:"expected_users_at_decision"`
	TimelineAtDecision      int     `json:"timeline_at_decision"`
	Assumptions             *string `json:"assumptions"`
}

func (h *Handler) createSnapshot(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req createSnapshotReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	snap, err := h.svc.CreateSnapshot(c.Request.Context(), id, &domain.CreateSnapshotRequest{
		TeamSizeAtDecision:      req.TeamSizeAtDecision,
		ExpectedUsersAtDecision: req.ExpectedUsersAtDecision,
		TimelineAtDecision:      req.TimelineAtDecision,
		Assumptions:             req.Assumptions,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "snapshot": snap})
}

func (h *Handler) listSnapshots(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	items, err := h.svc.ListSnapshots(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "snapshots": items})
}

func (h *Handler) evaluate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ev, err := h.svc.Evaluate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "evaluation": ev})
}

func (h *Handler) listEvaluations(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	items, err := h.svc.ListEvaluations(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "evaluations": items})
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid decision id"})
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps orchestrator failures per the error taxonomy: a missing
// decision is 404, missing setup steps (context, snapshot) are 400 with an
// actionable message, anything else is a storage fault.
func respondError(c *gin.Context, err error) {
	var decisionNotFound *decisionsdomain.NotFoundError
	var snapshotNotFound *domain.SnapshotNotFoundError
	switch {
	case errors.As(err, &decisionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrNoProjectContext),
		errors.As(err, &snapshotNotFound),
		errors.Is(err, domain.ErrNonPositiveSnapshotField):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}

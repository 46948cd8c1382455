package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/decisio-app/decisio-backend/internal/projectcontext/domain"
	"github.com/decisio-app/decisio-backend/internal/projectcontext/service"
)

type Handler struct {
	svc *service.ContextService
}

func Register(rg *gin.RouterGroup, svc *service.ContextService) {
	h := &Handler{svc: svc}

	rg.PUT("", h.upsert)
	rg.GET("", h.get)
}

func (h *Handler) upsert(c *gin.Context) {
	var req domain.UpsertContextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	pc, err := h.svc.Upsert(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrFirstContextIncomplete), errors.Is(err, domain.ErrNonPositiveField):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "context": pc})
}

func (h *Handler) get(c *gin.Context) {
	pc, err := h.svc.Current(c.Request.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "context": pc})
}

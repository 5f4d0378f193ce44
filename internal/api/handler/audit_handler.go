package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/stockflow/dashboard/internal/core/domain"
	"github.com/stockflow/dashboard/internal/core/ports"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

// AuditHandler exposes the session audit trail.
type AuditHandler struct {
	repo ports.SessionEventRepository
}

func NewAuditHandler(repo ports.SessionEventRepository) *AuditHandler {
	return &AuditHandler{repo: repo}
}

type auditListResponse struct {
	UserID string                 `json:"user_id"`
	Events []*domain.SessionEvent `json:"events"`
}

// List handles GET /audit/sessions.
//
// @Summary      List session events
// @Tags         audit
// @Produce      json
// @Param        user_id  query     string  false  "User id (defaults to the caller)"
// @Param        limit    query     int     false  "Maximum number of events"
// @Success      200      {object}  auditListResponse
// @Failure      400      {object}  errorResponse
// @Failure      401      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Router       /audit/sessions [get]
func (h *AuditHandler) List(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	userID := c.QueryParam("user_id")
	if userID == "" {
		userID = user.ID
	}

	limit := defaultAuditLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "limit must be a positive integer"})
		}
		limit = min(n, maxAuditLimit)
	}

	events, err := h.repo.ListByUser(c.Request().Context(), userID, limit)
	if err != nil {
		return err
	}
	if events == nil {
		events = []*domain.SessionEvent{}
	}
	return c.JSON(http.StatusOK, auditListResponse{UserID: userID, Events: events})
}

package audit

import (
	"github.com/gin-gonic/gin"

	"github.com/joefazee/arena/app/api"
	"github.com/joefazee/arena/internal/deps"
	"github.com/joefazee/arena/models"
)

const (
	RepoKey     = "audit_repository"
	RecorderKey = "audit_recorder"
)

// InitRepositories registers the audit repository and recorder
func InitRepositories(container *deps.Container) {
	repo := NewRepository(container.DB)
	container.RegisterRepository(RepoKey, repo)
	container.RegisterService(RecorderKey, NewRecorder(repo))
}

// MountPublic mounts read access to a market's audit trail
func MountPublic(r *gin.RouterGroup, container *deps.Container) {
	rec := deps.Service[Recorder](container, RecorderKey)
	h := &handler{recorder: rec, container: container}
	r.GET("/markets/:event_id/history", h.MarketHistory)
}

type handler struct {
	recorder  Recorder
	container *deps.Container
}

// MarketHistory godoc
// @Summary Get market history
// @Description List the audit trail of a market, oldest first
// @Tags markets
// @Produce json
// @Param event_id path string true "Event ID"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Success 200 {object} api.Response{data=[]models.AuditLog}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 500 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/markets/{event_id}/history [get]
func (h *handler) MarketHistory(c *gin.Context) {
	eventID := c.Param("event_id")
	if err := models.ValidateEventID(eventID); err != nil {
		api.DomainErrorResponse(c, h.container.Logger, err, "Invalid event id")
		return
	}

	var q api.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		api.ValidationErrorResponse(c, api.FormatValidationErrors(err))
		return
	}

	result, err := h.recorder.History(c.Request.Context(), models.AuditResourceMarket, eventID, &q)
	if err != nil {
		api.DomainErrorResponse(c, h.container.Logger, err, "Failed to get market history")
		return
	}

	api.PaginatedResponse(c, "Market history retrieved successfully", result.Entries,
		api.NewPaginationMeta(result.Page, result.PerPage, result.Total))
}

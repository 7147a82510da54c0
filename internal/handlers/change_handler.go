package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"todoey/internal/models"
	"todoey/internal/services"
)

// ChangeHandler exposes the change journal so clients can poll for updates.
type ChangeHandler struct {
	changeService services.ChangeServicer
}

// NewChangeHandler creates a new ChangeHandler
func NewChangeHandler(changeService services.ChangeServicer) *ChangeHandler {
	return &ChangeHandler{changeService: changeService}
}

// ChangesQuery holds the polling cursor.
type ChangesQuery struct {
	Since uint64 `form:"since"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=1000"`
}

// ChangesResponse lists journal entries after a cursor.
type ChangesResponse struct {
	Changes  []models.Change `json:"changes"`
	Revision uint64          `json:"revision"`
}

// ListChanges handles polling the change journal
// @Summary     List changes
// @Description Journal entries after the given sequence number, oldest first
// @Tags        changes
// @Produce     json
// @Security    ApiKeyAuth
// @Param       since query int false "Return changes after this sequence number"
// @Param       limit query int false "Maximum number of changes (default 100)"
// @Success     200 {object} ChangesResponse "Changes"
// @Failure     400 {object} ErrorResponse "Invalid query"
// @Router      /changes [get]
func (h *ChangeHandler) ListChanges(c *gin.Context) {
	var query ChangesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	revision, err := h.changeService.Revision(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	changes, err := h.changeService.ChangesSince(c.Request.Context(), query.Since, query.Limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, ChangesResponse{Changes: changes, Revision: revision})
}

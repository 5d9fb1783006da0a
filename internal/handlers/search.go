package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SearchRecords serves the API search across patients and studies.
func (h *Handler) SearchRecords(c *gin.Context) {
	results, err := h.Search.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

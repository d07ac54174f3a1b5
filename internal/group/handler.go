package group

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kreyvi/hw05-final/internal/logs"
)

type Handler struct {
	groups *Store
}

func NewHandler(groups *Store) *Handler {
	return &Handler{groups: groups}
}

// ListGroups GET /api/groups
func (h *Handler) ListGroups(c *gin.Context) {
	groups, err := h.groups.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing groups"})
		logs.LogJSON("ERROR", "Error listing groups", map[string]interface{}{
			"error": err.Error(),
			"route": c.FullPath(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

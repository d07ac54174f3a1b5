package follow

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kreyvi/hw05-final/internal/logs"
	"github.com/Kreyvi/hw05-final/internal/user"
)

type Handler struct {
	graph *Store
	users *user.Store
}

func NewHandler(graph *Store, users *user.Store) *Handler {
	return &Handler{graph: graph, users: users}
}

func profileURL(username string) string {
	return fmt.Sprintf("/api/users/%s/posts", username)
}

// FollowUser POST /api/users/:username/follow
func (h *Handler) FollowUser(c *gin.Context) {
	route := c.FullPath()

	followerID := c.GetString("user_id")
	username := c.Param("username")

	author, err := h.users.GetByUsername(username)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		logs.LogJSON("WARN", "Follow target not found", map[string]interface{}{
			"route":    route,
			"userID":   followerID,
			"username": username,
		})
		return
	}

	if err := h.graph.Follow(followerID, author.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error adding follow"})
		logs.LogJSON("ERROR", "Error adding follow", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": followerID,
			"extra":  fmt.Sprintf("authorID : %s", author.ID),
		})
		return
	}

	logs.LogJSON("INFO", "Followed user", map[string]interface{}{
		"route":  route,
		"userID": followerID,
		"extra":  fmt.Sprintf("authorID : %s", author.ID),
	})
	c.Redirect(http.StatusSeeOther, profileURL(username))
}

// UnfollowUser DELETE /api/users/:username/follow
func (h *Handler) UnfollowUser(c *gin.Context) {
	route := c.FullPath()

	followerID := c.GetString("user_id")
	username := c.Param("username")

	author, err := h.users.GetByUsername(username)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		logs.LogJSON("WARN", "Unfollow target not found", map[string]interface{}{
			"route":    route,
			"userID":   followerID,
			"username": username,
		})
		return
	}

	if err := h.graph.Unfollow(followerID, author.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error removing follow"})
		logs.LogJSON("ERROR", "Error removing follow", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": followerID,
			"extra":  fmt.Sprintf("authorID : %s", author.ID),
		})
		return
	}

	logs.LogJSON("INFO", "Unfollowed user", map[string]interface{}{
		"route":  route,
		"userID": followerID,
		"extra":  fmt.Sprintf("authorID : %s", author.ID),
	})
	c.Redirect(http.StatusSeeOther, profileURL(username))
}

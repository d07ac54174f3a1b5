package feed

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kreyvi/hw05-final/internal/follow"
	"github.com/Kreyvi/hw05-final/internal/group"
	"github.com/Kreyvi/hw05-final/internal/logs"
	"github.com/Kreyvi/hw05-final/internal/metrics"
	"github.com/Kreyvi/hw05-final/internal/post"
	"github.com/Kreyvi/hw05-final/internal/user"
)

type Handler struct {
	composer *Composer
	posts    *post.Store
	users    *user.Store
	groups   *group.Store
	graph    *follow.Store
	pageSize int
}

func NewHandler(composer *Composer, posts *post.Store, users *user.Store, groups *group.Store, graph *follow.Store, pageSize int) *Handler {
	return &Handler{
		composer: composer,
		posts:    posts,
		users:    users,
		groups:   groups,
		graph:    graph,
		pageSize: pageSize,
	}
}

func (h *Handler) servePage(c *gin.Context, v View) (*Page, bool) {
	metrics.FeedRequests.WithLabelValues(v.Kind.String()).Inc()

	seq, err := h.composer.Compose(v)
	if err == nil {
		var page *Page
		page, err = Paginate(seq, h.pageSize, NormalizePage(c.Query("page")))
		if err == nil {
			return page, true
		}
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "Error composing feed"})
	logs.LogJSON("ERROR", "Error composing feed", map[string]interface{}{
		"error": err.Error(),
		"route": c.FullPath(),
		"view":  v.Kind.String(),
	})
	return nil, false
}

// Index GET / — the global timeline. The cached-response middleware in
// front of this handler is the only caching in the system.
func (h *Handler) Index(c *gin.Context) {
	page, ok := h.servePage(c, View{Kind: ViewGlobal})
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page})
}

// GroupPosts GET /api/groups/:slug/posts
func (h *Handler) GroupPosts(c *gin.Context) {
	slug := c.Param("slug")

	g, err := h.groups.GetBySlug(slug)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		logs.LogJSON("WARN", "Group not found", map[string]interface{}{
			"route": c.FullPath(),
			"slug":  slug,
		})
		return
	}

	page, ok := h.servePage(c, View{Kind: ViewGroup, GroupID: g.ID})
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"group": g, "page": page})
}

// Profile GET /api/users/:username/posts
func (h *Handler) Profile(c *gin.Context) {
	username := c.Param("username")

	author, err := h.users.GetByUsername(username)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		logs.LogJSON("WARN", "User not found", map[string]interface{}{
			"route":    c.FullPath(),
			"username": username,
		})
		return
	}

	page, ok := h.servePage(c, View{Kind: ViewProfile, AuthorID: author.ID})
	if !ok {
		return
	}

	postsCount, err := h.posts.CountByAuthor(author.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting posts"})
		return
	}
	followersCount, err := h.graph.FollowerCountOf(author.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting followers"})
		return
	}

	response := gin.H{
		"author": gin.H{
			"id":         author.ID,
			"username":   author.Username,
			"avatar_url": author.AvatarURL,
			"bio":        author.Bio,
		},
		"posts_count":     postsCount,
		"followers_count": followersCount,
		"page":            page,
	}

	// Viewer-specific flag, only when someone is logged in.
	if viewerID := c.GetString("user_id"); viewerID != "" && viewerID != author.ID {
		following, err := h.graph.IsFollowing(viewerID, author.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking follow state"})
			return
		}
		response["is_following"] = following
	}

	c.JSON(http.StatusOK, response)
}

// Following GET /api/feed/following — posts by everyone the viewer
// follows, resolved at query time.
func (h *Handler) Following(c *gin.Context) {
	viewerID := c.GetString("user_id")

	page, ok := h.servePage(c, View{Kind: ViewFollowing, ViewerID: viewerID})
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page})
}

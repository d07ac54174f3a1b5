package post

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Kreyvi/hw05-final/internal/group"
	"github.com/Kreyvi/hw05-final/internal/logs"
	"github.com/Kreyvi/hw05-final/internal/metrics"
	"github.com/Kreyvi/hw05-final/internal/storage"
)

type Handler struct {
	posts  *Store
	groups *group.Store
}

func NewHandler(posts *Store, groups *group.Store) *Handler {
	return &Handler{posts: posts, groups: groups}
}

func detailURL(username string, postID uint) string {
	return fmt.Sprintf("/api/users/%s/posts/%d", username, postID)
}

var validImageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true,
	".gif": true, ".webp": true, ".heic": true,
}

// uploadImage stores the optional multipart image and returns its public
// URL, or "" when no image was sent.
func (h *Handler) uploadImage(c *gin.Context) (string, bool) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		return "", true // no image attached
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !validImageExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"image": "Invalid file extension"}})
		return "", false
	}

	if !storage.Enabled() {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Image storage not configured"})
		return "", false
	}

	filename := fmt.Sprintf("post_%s%s", uuid.New().String(), ext)
	url, err := storage.UploadToS3(file, filename, header.Header.Get("Content-Type"), "posts")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error uploading image", "details": err.Error()})
		return "", false
	}
	return url, true
}

// resolveGroup maps the optional group form field to a group ID.
func (h *Handler) resolveGroup(c *gin.Context, slug string) (*uint, bool) {
	if slug == "" {
		return nil, true
	}
	g, err := h.groups.GetBySlug(slug)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"group": "Unknown group"}})
		return nil, false
	}
	return &g.ID, true
}

// CreatePost POST /api/posts
func (h *Handler) CreatePost(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	text := c.PostForm("text")
	groupID, ok := h.resolveGroup(c, c.PostForm("group"))
	if !ok {
		return
	}
	imageURL, ok := h.uploadImage(c)
	if !ok {
		return
	}

	p, err := h.posts.Create(userID, text, groupID, imageURL)
	if err != nil {
		// The image is already in S3 at this point; don't leave it orphaned.
		if imageURL != "" {
			if parts := strings.Split(imageURL, ".amazonaws.com/"); len(parts) > 1 {
				_ = storage.DeleteFromS3(parts[1])
			}
		}

		if errors.Is(err, ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"text": "Text is required"}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating post"})
		logs.LogJSON("ERROR", "Error creating post", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	metrics.PostsCreated.Inc()
	logs.LogJSON("INFO", "Post created", map[string]interface{}{
		"route":  route,
		"userID": userID,
		"postID": p.ID,
	})
	c.JSON(http.StatusCreated, gin.H{"message": "Post created", "post": p})
}

// EditPost PATCH /api/posts/:id
//
// Only the author may edit. A non-author is redirected to the post detail
// with the post unchanged — a normal outcome, not an error page. The
// author is redirected to the same place after the edit is applied.
func (h *Handler) EditPost(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var edit Edit
	if text, ok := c.GetPostForm("text"); ok {
		edit.Text = &text
	}
	if slug, ok := c.GetPostForm("group"); ok {
		if slug == "" {
			edit.ClearGroup = true
		} else {
			groupID, ok := h.resolveGroup(c, slug)
			if !ok {
				return
			}
			edit.GroupID = groupID
		}
	}
	if imageURL, ok := h.uploadImage(c); !ok {
		return
	} else if imageURL != "" {
		edit.ImageURL = &imageURL
	}

	p, err := h.posts.Update(uint(id), userID, edit)
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	case errors.Is(err, ErrForbidden):
		logs.LogJSON("WARN", "Edit rejected, not the author", map[string]interface{}{
			"route":  route,
			"userID": userID,
			"postID": p.ID,
		})
		c.Redirect(http.StatusSeeOther, detailURL(p.Author.Username, p.ID))
		return
	case errors.Is(err, ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"text": "Text is required"}})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating post"})
		logs.LogJSON("ERROR", "Error updating post", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	logs.LogJSON("INFO", "Post updated", map[string]interface{}{
		"route":  route,
		"userID": userID,
		"postID": p.ID,
	})
	c.Redirect(http.StatusSeeOther, detailURL(p.Author.Username, p.ID))
}

// GetPost GET /api/users/:username/posts/:id
func (h *Handler) GetPost(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	p, err := h.posts.Get(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	commentsCount, err := h.posts.CommentCountOf(p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting comments"})
		return
	}
	authorPosts, err := h.posts.CountByAuthor(p.AuthorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"post":               p,
		"comments_count":     commentsCount,
		"author_posts_count": authorPosts,
	})
}

// GetComments GET /api/posts/:id/comments
func (h *Handler) GetComments(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if _, err := h.posts.Get(uint(id)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	comments, err := h.posts.CommentsOf(uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching comments"})
		return
	}
	if comments == nil {
		comments = []Comment{}
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// CreateComment POST /api/posts/:id/comments
func (h *Handler) CreateComment(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var input struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.posts.AddComment(uint(id), userID, input.Text)
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	case errors.Is(err, ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"text": "Text is required"}})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating comment"})
		logs.LogJSON("ERROR", "Error creating comment", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	logs.LogJSON("INFO", "Comment created", map[string]interface{}{
		"route":  route,
		"userID": userID,
		"postID": id,
	})
	c.JSON(http.StatusCreated, gin.H{"message": "Comment created", "comment": comment})
}

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"inkwell/internal/middleware"
	"inkwell/internal/services"
	"inkwell/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type PostHandler struct {
	posts   *services.PostService
	auth    *services.AuthService
	perPage int
	log     *logrus.Logger
}

func NewPostHandler(posts *services.PostService, auth *services.AuthService, perPage int, log *logrus.Logger) *PostHandler {
	return &PostHandler{posts: posts, auth: auth, perPage: perPage, log: log}
}

func postPath(id uint) string {
	return fmt.Sprintf("/post/%d", id)
}

// Index 首页文章流，serves /, /home and /posts
func (h *PostHandler) Index(c *gin.Context) {
	page, err := h.posts.ListPosts(c.Request.Context(), pageParam(c), h.perPage)
	if err != nil {
		abortWithServiceError(c, h.log, err)
		return
	}

	Render(c, http.StatusOK, view.Index, gin.H{
		"Title": "Latest Posts",
		"Posts": page.Items,
		"P":     page,
	})
}

// Dashboard lists the caller's own posts.
func (h *PostHandler) Dashboard(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	page, err := h.posts.ListUserPosts(c.Request.Context(), user.ID, pageParam(c), h.perPage)
	if err != nil {
		abortWithServiceError(c, h.log, err)
		return
	}

	Render(c, http.StatusOK, view.Dashboard, gin.H{
		"Title":    "Dashboard",
		"MyPosts":  page.Items,
		"P":        page,
		"Username": user.Username,
	})
}

func (h *PostHandler) ShowCreate(c *gin.Context) {
	Render(c, http.StatusOK, view.NewPost, gin.H{"Title": "New Post"})
}

func (h *PostHandler) Create(c *gin.Context) {
	post, err := h.posts.CreatePost(c.Request.Context(), middleware.CurrentUserID(c), c.PostForm("title"), c.PostForm("content"))
	switch {
	case err == nil:
		redirectWithFlash(c, middleware.FlashSuccess, "Post created!", postPath(post.ID))
	case errors.Is(err, services.ErrInvalidInput):
		redirectWithFlash(c, middleware.FlashDanger, "Title and content are required.", "/post/new")
	default:
		abortWithServiceError(c, h.log, err)
	}
}

func (h *PostHandler) Detail(c *gin.Context) {
	id, err := postIDParam(c)
	if err != nil {
		abortWithServiceError(c, h.log, err)
		return
	}

	ctx := c.Request.Context()
	post, err := h.posts.GetPost(ctx, id)
	if err != nil {
		abortWithServiceError(c, h.log, err)
		return
	}
	comments, err := h.posts.ListComments(ctx, id)
	if err != nil {
		abortWithServiceError(c, h.log, err)
		return
	}

	Render(c, http.StatusOK, view.Detail, gin.H{
		"Title":    post.Title,
		"Post":     post,
		"Comments": comments,
		"IsOwner":  h.auth.AuthorizeOwner(post.UserID, middleware.CurrentUserID(c)) == nil,
	})
}

// CreateComment handles POST /post/:id. Anonymous callers are sent to the
// login page and brought back afterwards.
func (h *PostHandler) CreateComment(c *gin.Context) {
	id, err := postIDParam(c)
	if err != nil {
		abortWithServiceError(c, h.log, err)
		return
	}

	_, err = h.posts.AddComment(c.Request.Context(), id, middleware.CurrentUserID(c), c.PostForm("comment_content"))
	switch {
	case err == nil:
		redirectWithFlash(c, middleware.FlashSuccess, "Your comment has been added.", postPath(id))
	case errors.Is(err, services.ErrAuthenticationRequired):
		redirectWithFlash(c, middleware.FlashInfo, "Please log in to comment.", "/login?next="+url.QueryEscape(postPath(id)))
	case errors.Is(err, services.ErrInvalidInput):
		redirectWithFlash(c, middleware.FlashWarning, "Comment cannot be empty.", postPath(id))
	default:
		abortWithServiceError(c, h.log, err)
	}
}

func (h *PostHandler) ShowEdit(c *gin.Context) {
	id, err := postIDParam(c)
	if err != nil {
		abortWithServiceError(c, h.log, err)
		return
	}

	post, err := h.posts.GetPost(c.Request.Context(), id)
	if err != nil {
		abortWithServiceError(c, h.log, err)
		return
	}
	// 验证是否为作者
	if err := h.auth.AuthorizeOwner(post.UserID, middleware.CurrentUserID(c)); err != nil {
		abortWithServiceError(c, h.log, err)
		return
	}

	Render(c, http.StatusOK, view.EditPost, gin.H{"Title": "Edit Post", "Post": post})
}

func (h *PostHandler) Update(c *gin.Context) {
	id, err := postIDParam(c)
	if err != nil {
		abortWithServiceError(c, h.log, err)
		return
	}

	err = h.posts.UpdatePost(c.Request.Context(), id, middleware.CurrentUserID(c), c.PostForm("title"), c.PostForm("content"))
	switch {
	case err == nil:
		redirectWithFlash(c, middleware.FlashSuccess, "Post updated.", postPath(id))
	case errors.Is(err, services.ErrInvalidInput):
		redirectWithFlash(c, middleware.FlashDanger, "Title and content are required.", postPath(id)+"/edit")
	default:
		abortWithServiceError(c, h.log, err)
	}
}

func (h *PostHandler) Delete(c *gin.Context) {
	id, err := postIDParam(c)
	if err != nil {
		abortWithServiceError(c, h.log, err)
		return
	}

	if err := h.posts.DeletePost(c.Request.Context(), id, middleware.CurrentUserID(c)); err != nil {
		abortWithServiceError(c, h.log, err)
		return
	}
	redirectWithFlash(c, middleware.FlashSuccess, "Post deleted.", "/dashboard")
}

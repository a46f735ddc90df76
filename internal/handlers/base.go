package handlers

import (
	"errors"
	"net/http"
	"strings"

	"inkwell/internal/middleware"
	"inkwell/internal/services"
	"inkwell/internal/utils"
	"inkwell/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Render helper to inject common variables like 'current user'
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	if user, ok := middleware.CurrentUser(c); ok {
		obj["CurrentUser"] = user
	}
	obj["Flashes"] = middleware.Flashes(c)
	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// RenderError renders the error page with the given status.
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, view.Error, gin.H{"Title": http.StatusText(code), "Error": message})
}

// abortWithServiceError turns the errors that never become flashes into
// error pages: 404, 403, and 500 for anything unexpected.
func abortWithServiceError(c *gin.Context, log *logrus.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		RenderError(c, http.StatusNotFound, "The requested page does not exist.")
	case errors.Is(err, services.ErrForbidden):
		RenderError(c, http.StatusForbidden, "You are not allowed to do that.")
	default:
		log.WithError(err).WithField("path", c.Request.URL.Path).Error("Unhandled error")
		RenderError(c, http.StatusInternalServerError, "Something went wrong.")
	}
	c.Abort()
}

func redirectWithFlash(c *gin.Context, category, message, location string) {
	middleware.AddFlash(c, category, message)
	c.Redirect(http.StatusFound, location)
}

// pageParam reads ?page=, defaulting to 1.
func pageParam(c *gin.Context) int {
	if page := utils.StringToInt(c.Query("page")); page > 0 {
		return page
	}
	return 1
}

// postIDParam returns ErrNotFound for ids that cannot exist.
func postIDParam(c *gin.Context) (uint, error) {
	id := utils.StringToUint(c.Param("id"))
	if id == 0 {
		return 0, services.ErrNotFound
	}
	return id, nil
}

// safeNext accepts only local paths so ?next= cannot redirect off-site.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return ""
	}
	return next
}

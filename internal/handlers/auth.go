package handlers

import (
	"errors"
	"net/http"

	"inkwell/internal/middleware"
	"inkwell/internal/services"
	"inkwell/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	auth *services.AuthService
	log  *logrus.Logger
}

func NewAuthHandler(auth *services.AuthService, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	Render(c, http.StatusOK, view.Register, gin.H{"Title": "Register"})
}

func (h *AuthHandler) Register(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	_, err := h.auth.Register(c.Request.Context(), c.PostForm("username"), c.PostForm("password"))
	switch {
	case err == nil:
		redirectWithFlash(c, middleware.FlashSuccess, "Registration successful! You can now log in.", "/login")
	case errors.Is(err, services.ErrInvalidInput):
		redirectWithFlash(c, middleware.FlashDanger, "Username and password are required.", "/register")
	case errors.Is(err, services.ErrUsernameTaken):
		redirectWithFlash(c, middleware.FlashWarning, "Username already taken. Please choose another.", "/register")
	default:
		abortWithServiceError(c, h.log, err)
	}
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	Render(c, http.StatusOK, view.Login, gin.H{"Title": "Log In", "Next": safeNext(c.Query("next"))})
}

func (h *AuthHandler) Login(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	next := safeNext(c.Query("next"))
	if next == "" {
		next = safeNext(c.PostForm("next"))
	}

	_, err := h.auth.Authenticate(c.Request.Context(), middleware.SessionFor(c), c.PostForm("username"), c.PostForm("password"))
	switch {
	case err == nil:
		if next == "" {
			next = "/"
		}
		redirectWithFlash(c, middleware.FlashSuccess, "Logged in successfully.", next)
	case errors.Is(err, services.ErrAuthenticationFailed):
		middleware.AddFlash(c, middleware.FlashDanger, "Login failed. Check username and password.")
		Render(c, http.StatusOK, view.Login, gin.H{"Title": "Log In", "Next": next})
	default:
		abortWithServiceError(c, h.log, err)
	}
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.auth.Logout(middleware.SessionFor(c)); err != nil {
		abortWithServiceError(c, h.log, err)
		return
	}
	redirectWithFlash(c, middleware.FlashSuccess, "You have been logged out successfully.", "/")
}

// ChangePassword handles the dashboard password form.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	err := h.auth.ChangePassword(c.Request.Context(), userID, c.PostForm("current_password"), c.PostForm("new_password"))
	switch {
	case err == nil:
		redirectWithFlash(c, middleware.FlashSuccess, "Password updated.", "/dashboard")
	case errors.Is(err, services.ErrInvalidInput):
		redirectWithFlash(c, middleware.FlashDanger, "New password is required.", "/dashboard")
	case errors.Is(err, services.ErrAuthenticationFailed):
		redirectWithFlash(c, middleware.FlashDanger, "Current password is incorrect.", "/dashboard")
	default:
		abortWithServiceError(c, h.log, err)
	}
}

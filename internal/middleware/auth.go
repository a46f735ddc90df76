package middleware

import (
	"errors"
	"net/http"
	"net/url"

	"inkwell/internal/models"
	"inkwell/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const CheckUserKey = "user"

const sessionUserKey = "user_id"

// Session adapts a gin cookie session to services.SessionBinder.
type Session struct {
	s sessions.Session
}

// SessionFor returns the request's session.
func SessionFor(c *gin.Context) *Session {
	return &Session{s: sessions.Default(c)}
}

func (s *Session) Login(userID uint) error {
	s.s.Set(sessionUserKey, userID)
	return s.s.Save()
}

// Logout drops the identity together with any pending flashes.
func (s *Session) Logout() error {
	s.s.Clear()
	return s.s.Save()
}

// UserID returns the bound user id, or 0 for anonymous sessions.
func (s *Session) UserID() uint {
	id, _ := s.s.Get(sessionUserKey).(uint)
	return id
}

// LoadUser retrieves user from session and sets to context
func LoadUser(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := SessionFor(c)
		if userID := sess.UserID(); userID != 0 {
			user, err := auth.CurrentUser(c.Request.Context(), userID)
			switch {
			case err == nil:
				c.Set(CheckUserKey, user)
			case errors.Is(err, services.ErrNotFound):
				// 用户已被删除，清理失效的会话
				_ = sess.Logout()
			default:
				_ = c.Error(err)
			}
		}
		c.Next()
	}
}

// AuthRequired ensures a user is logged in
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			AddFlash(c, FlashInfo, "Please log in to access this page.")
			c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user loaded by LoadUser.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(CheckUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

// CurrentUserID is 0 for anonymous requests.
func CurrentUserID(c *gin.Context) uint {
	if user, ok := CurrentUser(c); ok {
		return user.ID
	}
	return 0
}

package router

import (
	"net/http"

	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
	"inkwell/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const sessionName = "inkwell_session"

// Deps is what the HTTP layer needs from the rest of the program.
type Deps struct {
	Auth         *services.AuthService
	Posts        *services.PostService
	Log          *logrus.Logger
	SecretKey    string
	PerPage      int
	SecureCookie bool
}

// New builds the gin engine with middleware and routes. The caller sets
// HTMLRender.
func New(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(d.Log))

	store := cookie.NewStore([]byte(d.SecretKey))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		Secure:   d.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))
	r.Use(middleware.LoadUser(d.Auth))

	RegisterRoutes(r,
		handlers.NewAuthHandler(d.Auth, d.Log),
		handlers.NewPostHandler(d.Posts, d.Auth, d.PerPage, d.Log),
	)
	return r
}

func RegisterRoutes(r *gin.Engine, authHandler *handlers.AuthHandler, postHandler *handlers.PostHandler) {
	// 公共路由 (Public Routes)
	r.GET("/", postHandler.Index)
	r.GET("/home", postHandler.Index)
	r.GET("/posts", postHandler.Index)
	r.GET("/post/:id", postHandler.Detail)
	r.POST("/post/:id", postHandler.CreateComment) // 未登录时跳转登录页

	r.GET("/register", authHandler.ShowRegister)
	r.POST("/register", authHandler.Register)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)

	// 受保护路由 (Protected Routes)
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/logout", authHandler.Logout)
		authorized.GET("/dashboard", postHandler.Dashboard)
		authorized.POST("/dashboard/password", authHandler.ChangePassword)

		authorized.GET("/post/new", postHandler.ShowCreate)
		authorized.POST("/post/new", postHandler.Create)
		authorized.GET("/post/:id/edit", postHandler.ShowEdit)
		authorized.POST("/post/:id/edit", postHandler.Update)
		authorized.POST("/post/:id/delete", postHandler.Delete)
	}
}

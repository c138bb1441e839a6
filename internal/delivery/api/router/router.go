// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"strings"

	"donorhub/config"
	"donorhub/internal/delivery/api/middleware"
	"donorhub/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	ProfileHandler *handler.ProfileHandler
	AvatarHandler  *handler.AvatarHandler
	HealthHandler  *handler.HealthHandler
	AuthMiddleware *middleware.AuthMiddleware
	Config         *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	profileHandler *handler.ProfileHandler
	avatarHandler  *handler.AvatarHandler
	healthHandler  *handler.HealthHandler
	authMiddleware *middleware.AuthMiddleware
	config         *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		profileHandler: params.ProfileHandler,
		avatarHandler:  params.AvatarHandler,
		healthHandler:  params.HealthHandler,
		authMiddleware: params.AuthMiddleware,
		config:         params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", r.healthHandler.Check)

	usersGroup := e.Group("/users")
	{
		usersGroup.GET("/health", r.healthHandler.Check)
		usersGroup.POST("", r.userHandler.Register)
		usersGroup.POST("/authenticate", r.userHandler.Authenticate)
	}

	// Account routes need a valid token for the same user named in the path.
	// Guards are attached per route so the public routes above keep their own chain.
	owner := []echo.MiddlewareFunc{r.authMiddleware.Authenticate, r.authMiddleware.RequireOwner("id")}
	{
		usersGroup.GET("/:id", r.userHandler.GetUser, owner...)
		usersGroup.PUT("/:id", r.userHandler.UpdateUser, owner...)
		usersGroup.PUT("/change-password/:id", r.userHandler.ChangePassword, owner...)
		usersGroup.POST("/:id/avatar", r.avatarHandler.Upload, owner...)
		usersGroup.PUT("/:id/profile", r.profileHandler.SaveProfile, owner...)
	}

	r.registerAvatarRoutes(e)
}

// registerAvatarRoutes serves stored avatars when the public prefix is a local path rather than a CDN URL.
func (r *router) registerAvatarRoutes(e *echo.Echo) {
	if r.config.Avatar == nil {
		return
	}

	prefix := strings.TrimRight(r.config.Avatar.PublicPrefix, "/")
	if !strings.HasPrefix(prefix, "/") {
		return
	}

	e.GET(prefix+"/:key", r.avatarHandler.Serve)
}

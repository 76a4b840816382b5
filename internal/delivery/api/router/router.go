// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"account/config"
	"account/internal/delivery/api/middleware"
	"account/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler *handler.AccountHandler
	AuthMiddleware *middleware.AuthMiddleware
	Config         *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler *handler.AccountHandler
	authMiddleware *middleware.AuthMiddleware
	config         *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler: params.AccountHandler,
		authMiddleware: params.AuthMiddleware,
		config:         params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Login is the only public account route.
	api.POST("/user/auth", r.accountHandler.Authenticate)

	if r.openRegistration() {
		api.POST("/user/create", r.accountHandler.CreateAccount)
	} else {
		api.POST("/user/create", r.accountHandler.CreateAccount, r.authMiddleware.Authenticate)
	}

	api.GET("/users", r.accountHandler.ListAccounts, r.authMiddleware.Authenticate)
	api.GET("/user/email/:email", r.accountHandler.GetAccountByEmail, r.authMiddleware.Authenticate)
}

func (r *router) openRegistration() bool {
	return r.config != nil && r.config.Auth != nil && r.config.Auth.OpenRegistration
}

// Package router contains routing setup for the HTTP delivery.
package router

import (
	"usersvc/config"
	"usersvc/internal/delivery/http/middleware"
	"usersvc/internal/delivery/http/router/handler"
	"usersvc/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	Config          *config.Config
	UserHandler     *handler.UserHandler
	PasswordHandler *handler.PasswordHandler
	GateMiddleware  *middleware.GateMiddleware
	Metrics         *metrics.Metrics `optional:"true"`
}

// router holds all the handlers that need to be registered.
type router struct {
	cfg             *config.Config
	userHandler     *handler.UserHandler
	passwordHandler *handler.PasswordHandler
	gateMiddleware  *middleware.GateMiddleware
	metrics         *metrics.Metrics
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{
		cfg:             params.Config,
		userHandler:     params.UserHandler,
		passwordHandler: params.PasswordHandler,
		gateMiddleware:  params.GateMiddleware,
		metrics:         params.Metrics,
	}
}

// RegisterRoutes sets up all routes. Every route, health and metrics
// included, sits behind the request gate.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.gateMiddleware.Authenticate)

	e.GET("/health", handler.HealthCheck)

	e.POST("/create-user", r.userHandler.CreateUser)
	e.POST("/find-or-create", r.userHandler.FindOrCreate)
	e.GET("/find/:username", r.userHandler.FindUser)
	e.GET("/list", r.userHandler.ListUsers)
	e.POST("/update-user/:username", r.userHandler.UpdateUser)
	e.DELETE("/destroy/:username", r.userHandler.DestroyUser)

	e.POST("/password-check", r.passwordHandler.PasswordCheck)

	if r.metrics != nil && r.cfg.Metrics.Enabled {
		e.GET(r.cfg.Metrics.Path, echo.WrapHandler(r.metrics.Handler()))
	}
}

// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"ratereview/internal/delivery/http/middleware"
	"ratereview/internal/delivery/http/router/handler"
	"ratereview/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	StoreHandler   *handler.StoreHandler
	RatingHandler  *handler.RatingHandler
	AdminHandler   *handler.AdminHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	storeHandler   *handler.StoreHandler
	ratingHandler  *handler.RatingHandler
	adminHandler   *handler.AdminHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		storeHandler:   params.StoreHandler,
		ratingHandler:  params.RatingHandler,
		adminHandler:   params.AdminHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.GET("/callback", r.authHandler.Callback)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/refresh", r.authHandler.RefreshToken)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.POST("/password", r.authHandler.ChangePassword, r.authMiddleware.Authenticate)
	}

	// Store routes that require authentication
	storeGroup := e.Group("/stores")
	storeGroup.Use(r.authMiddleware.Authenticate)
	{
		storeGroup.GET("", r.storeHandler.List)
		storeGroup.POST("", r.storeHandler.Create,
			r.authMiddleware.RequireRole(entity.RoleOwner.String(), entity.RoleAdmin.String()))
		storeGroup.POST("/:id/ratings", r.ratingHandler.Submit,
			r.authMiddleware.RequireRole(entity.RoleUser.String()))
		storeGroup.GET("/:id/ratings", r.storeHandler.ListRatings,
			r.authMiddleware.RequireRole(entity.RoleOwner.String(), entity.RoleAdmin.String()))
		storeGroup.GET("/:id/qrcode", r.storeHandler.QR,
			r.authMiddleware.RequireRole(entity.RoleOwner.String()))
	}

	// Rating history for the logged-in user
	meGroup := e.Group("/me")
	meGroup.Use(r.authMiddleware.Authenticate)
	meGroup.Use(r.authMiddleware.RequireRole(entity.RoleUser.String()))
	{
		meGroup.GET("/ratings", r.ratingHandler.MyRatings)
	}

	// Admin routes that require authentication and the "admin" role
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin.String()))
	{
		adminGroup.GET("/stats", r.adminHandler.Stats)
		adminGroup.GET("/accounts", r.adminHandler.ListAccounts)
		adminGroup.POST("/accounts", r.adminHandler.CreateAccount)
	}
}

package router

import (
	"github.com/labstack/echo/v4"

	"vitrina/internal/adapter/api/handler"
	"vitrina/internal/adapter/api/middleware"
)

func SetupAuthRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, limiter *middleware.RateLimiter) {
	authHandler := handler.GetAuthHandler()

	// Public routes, rate limited against credential stuffing
	public := e.Group("/v1/auth", limiter.Middleware())
	public.POST("/register", authHandler.Register)
	public.POST("/login", authHandler.Login)

	protected := e.Group("/v1/auth")
	protected.Use(authMiddleware.Authenticate)
	protected.GET("/me", authHandler.GetProfile)
}

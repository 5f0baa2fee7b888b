package router

import (
	"github.com/labstack/echo/v4"

	"vitrina/internal/adapter/api/handler"
	"vitrina/internal/adapter/api/middleware"
)

func SetupUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	userHandler := handler.GetUserHandler()

	me := e.Group("/v1/users/me")
	me.Use(authMiddleware.Authenticate)
	me.POST("/username", userHandler.ReserveUsername)
	me.GET("/likes", userHandler.ListLikedIDs)
}

package router

import (
	"time"

	"github.com/labstack/echo/v4"

	"vitrina/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	authLimiter := middleware.NewRateLimiter(5, time.Minute)
	commentLimiter := middleware.NewRateLimiter(10, time.Minute)

	SetupAuthRouter(e, authMiddleware, authLimiter)
	SetupUserRouter(e, authMiddleware)
	SetupListingRouter(e, authMiddleware, adminMiddleware, commentLimiter)
	SetupAdminRouter(e, authMiddleware, adminMiddleware)
	SetupFeedRouter(e)
	SetupHealthRouter(e)
}

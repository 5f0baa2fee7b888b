package router

import (
	"github.com/labstack/echo/v4"

	"vitrina/internal/adapter/api/handler"
	"vitrina/internal/adapter/api/middleware"
)

func SetupListingRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware, commentLimiter *middleware.RateLimiter) {
	listingHandler := handler.GetListingHandler()
	commentHandler := handler.GetCommentHandler()

	// Browsing is public; a bearer token, when present, annotates liked flags.
	browse := e.Group("/v1/listings")
	browse.Use(authMiddleware.Optional)
	browse.GET("", listingHandler.ListListings)
	browse.GET("/:id", listingHandler.GetListing)
	browse.GET("/:id/comments", commentHandler.ListThreads)

	authed := e.Group("/v1/listings")
	authed.Use(authMiddleware.Authenticate)
	authed.POST("/:id/like", listingHandler.ToggleLike)
	authed.POST("/:id/comments", commentHandler.CreateComment, commentLimiter.Middleware())

	manage := e.Group("/v1/listings")
	manage.Use(authMiddleware.Authenticate)
	manage.Use(adminMiddleware.AdminOnly)
	manage.POST("", listingHandler.CreateListing)
	manage.PUT("/:id", listingHandler.UpdateListing)
	manage.DELETE("/:id", listingHandler.DeleteListing)
}

package router

import (
	"github.com/labstack/echo/v4"

	"vitrina/internal/adapter/api/handler"
)

// Feed routes authenticate via an optional token query parameter instead of
// middleware: websocket clients in browsers cannot set headers.
func SetupFeedRouter(e *echo.Echo) {
	feedHandler := handler.GetFeedHandler()

	e.GET("/v1/ws/listings", feedHandler.HandleListings)
	e.GET("/v1/ws/listings/:id/comments", feedHandler.HandleComments)
}

package handler

import (
	"github.com/labstack/echo/v4"

	ws "vitrina/internal/infrastructure/websocket"
	"vitrina/internal/usecase"
	"vitrina/pkg/response"
)

type AdminHandler struct {
	userUseCase *usecase.UserUseCase
	wsManager   *ws.Manager
}

var adminHandler *AdminHandler

func NewAdminHandler(userUseCase *usecase.UserUseCase, wsManager *ws.Manager) *AdminHandler {
	return &AdminHandler{
		userUseCase: userUseCase,
		wsManager:   wsManager,
	}
}

func SetupAdminHandler(userUseCase *usecase.UserUseCase, wsManager *ws.Manager) {
	adminHandler = NewAdminHandler(userUseCase, wsManager)
}

func GetAdminHandler() *AdminHandler {
	return adminHandler
}

type setRoleRequest struct {
	Admin bool `json:"admin"`
}

// SetRole grants or revokes the admin claim for a user. The claim takes
// effect on the target's next token refresh.
func (h *AdminHandler) SetRole(c echo.Context) error {
	uid := c.Param("uid")

	var req setRoleRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.userUseCase.SetAdminRole(c.Request().Context(), uid, req.Admin); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"uid":   uid,
		"admin": req.Admin,
	})
}

func (h *AdminHandler) GetStats(c echo.Context) error {
	return response.Success(c, map[string]interface{}{
		"feed_clients": h.wsManager.ClientCount(),
	})
}

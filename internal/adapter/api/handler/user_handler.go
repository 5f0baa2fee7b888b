package handler

import (
	"github.com/labstack/echo/v4"

	"vitrina/internal/domain/entity"
	"vitrina/internal/usecase"
	"vitrina/pkg/response"
)

type UserHandler struct {
	userUseCase    *usecase.UserUseCase
	listingUseCase *usecase.ListingUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase, listingUseCase *usecase.ListingUseCase) *UserHandler {
	return &UserHandler{
		userUseCase:    userUseCase,
		listingUseCase: listingUseCase,
	}
}

type reserveUsernameRequest struct {
	Username string `json:"username" validate:"required"`
}

type profileView struct {
	ID                string `json:"id"`
	Email             string `json:"email"`
	DisplayName       string `json:"display_name,omitempty"`
	PhotoURL          string `json:"photo_url,omitempty"`
	Username          string `json:"username"`
	SuggestedUsername string `json:"suggested_username,omitempty"`
	Role              string `json:"role"`
}

func profileViewFrom(user *entity.User) *profileView {
	return &profileView{
		ID:                user.ID,
		Email:             user.Email,
		DisplayName:       user.DisplayName,
		PhotoURL:          user.PhotoURL,
		Username:          user.Username,
		SuggestedUsername: user.SuggestedUsername,
		Role:              user.Role,
	}
}

// ReserveUsername claims a permanent handle for the caller. The handle is
// normalized server side; the response carries the form that was stored.
func (h *UserHandler) ReserveUsername(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req reserveUsernameRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	handle, err := h.userUseCase.ReserveUsername(c.Request().Context(), uid, req.Username)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"username": handle,
	})
}

func (h *UserHandler) ListLikedIDs(c echo.Context) error {
	uid := c.Get("uid").(string)

	ids, err := h.listingUseCase.LikedIDs(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"listing_ids": ids,
	})
}

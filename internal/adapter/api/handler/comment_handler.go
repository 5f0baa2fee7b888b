package handler

import (
	"github.com/labstack/echo/v4"

	"vitrina/internal/usecase"
	"vitrina/pkg/response"
)

type CommentHandler struct {
	commentUseCase *usecase.CommentUseCase
}

func NewCommentHandler(commentUseCase *usecase.CommentUseCase) *CommentHandler {
	return &CommentHandler{
		commentUseCase: commentUseCase,
	}
}

type createCommentRequest struct {
	Text     string `json:"text" validate:"required"`
	ParentID string `json:"parent_id"`
}

func (h *CommentHandler) CreateComment(c echo.Context) error {
	listingID := c.Param("id")
	uid, _ := c.Get("uid").(string)

	var req createCommentRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	comment, err := h.commentUseCase.CreateComment(c.Request().Context(), listingID, uid, usecase.CreateCommentInput{
		Text:     req.Text,
		ParentID: req.ParentID,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, comment)
}

func (h *CommentHandler) ListThreads(c echo.Context) error {
	listingID := c.Param("id")

	threads, err := h.commentUseCase.ListThreads(c.Request().Context(), listingID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, threads)
}

package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kanbancal/core/internal/infrastructure/logger"
	"github.com/kanbancal/core/internal/ports"
)

// CommentHandler handles the comment thread of a card
type CommentHandler struct {
	commentService ports.CommentService
	logger         *logger.Logger
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(commentService ports.CommentService, logger *logger.Logger) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		logger:         logger.WithComponent("comment_handler"),
	}
}

// ListComments godoc
// @Summary List comments on a card
// @Description Comments are returned oldest first
// @Tags comments
// @Produce json
// @Param id path int true "Card ID"
// @Success 200 {array} entities.Comment
// @Failure 500 {object} ports.ErrorResponse
// @Router /cards/{id}/comments [get]
func (h *CommentHandler) ListComments(c echo.Context) error {
	cardID, err := parseID(c)
	if err != nil {
		return err
	}

	comments, err := h.commentService.ListComments(c.Request().Context(), cardID)
	if err != nil {
		return storeFailure(h.logger, "List comments", err, "card_id", cardID)
	}

	return c.JSON(http.StatusOK, comments)
}

// AddComment godoc
// @Summary Comment on a card
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Card ID"
// @Param request body ports.CreateCommentRequest true "Comment"
// @Success 201 {object} entities.Comment
// @Failure 400 {object} ports.ErrorResponse
// @Failure 500 {object} ports.ErrorResponse
// @Router /cards/{id}/comments [post]
func (h *CommentHandler) AddComment(c echo.Context) error {
	cardID, err := parseID(c)
	if err != nil {
		return err
	}

	var req ports.CreateCommentRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	comment, err := h.commentService.AddComment(c.Request().Context(), cardID, req)
	if err != nil {
		return storeFailure(h.logger, "Add comment", err, "card_id", cardID)
	}

	return c.JSON(http.StatusCreated, comment)
}

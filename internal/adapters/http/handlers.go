package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kanbancal/core/internal/domain/entities"
	"github.com/kanbancal/core/internal/infrastructure/logger"
)

// Handlers groups every API handler so the server can register them in one place
type Handlers struct {
	Cards    *CardHandler
	Comments *CommentHandler
	Projects *ProjectHandler
}

// Register mounts the API routes on the given group
func (h *Handlers) Register(api *echo.Group) {
	cards := api.Group("/cards")
	cards.GET("", h.Cards.ListCards)
	cards.POST("", h.Cards.CreateCard)
	cards.GET("/:id", h.Cards.GetCard)
	cards.PUT("/:id", h.Cards.UpdateCard)
	cards.PATCH("/:id", h.Cards.UpdateCard)
	cards.DELETE("/:id", h.Cards.DeleteCard)
	cards.POST("/:id/archive", h.Cards.ArchiveCard)
	cards.POST("/:id/restore", h.Cards.RestoreCard)
	cards.GET("/:id/comments", h.Comments.ListComments)
	cards.POST("/:id/comments", h.Comments.AddComment)

	projects := api.Group("/projects")
	projects.GET("", h.Projects.ListProjects)
	projects.POST("/verify", h.Projects.VerifyProject)
}

// bindRequest decodes the body into req and runs the registered validator
func bindRequest(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return nil
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid card ID")
	}
	return id, nil
}

// projectScope reads the optional project_id query parameter
func projectScope(c echo.Context) (*int64, error) {
	raw := strings.TrimSpace(c.QueryParam("project_id"))
	if raw == "" {
		return nil, nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid project_id parameter")
	}
	return &id, nil
}

// storeFailure turns an unexpected error into a 500 carrying the raw message
func storeFailure(log *logger.Logger, action string, err error, fields ...interface{}) error {
	log.Errorw(action+" failed", append(fields, "error", err)...)
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error()).SetInternal(err)
}

func cardError(log *logger.Logger, action string, id int64, err error) error {
	if errors.Is(err, entities.ErrCardNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Card not found")
	}
	return storeFailure(log, action, err, "card_id", id)
}

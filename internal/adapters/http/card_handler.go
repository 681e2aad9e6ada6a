package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kanbancal/core/internal/domain/entities"
	"github.com/kanbancal/core/internal/infrastructure/logger"
	"github.com/kanbancal/core/internal/ports"
)

// CardHandler handles card-related requests
type CardHandler struct {
	cardService ports.CardService
	logger      *logger.Logger
}

// NewCardHandler creates a new card handler
func NewCardHandler(cardService ports.CardService, logger *logger.Logger) *CardHandler {
	return &CardHandler{
		cardService: cardService,
		logger:      logger.WithComponent("card_handler"),
	}
}

// ListCards godoc
// @Summary List cards
// @Description List board cards, newest first unless sort=position
// @Tags cards
// @Produce json
// @Param project_id query int false "Project scope"
// @Param sort query string false "created_at (default) or position"
// @Success 200 {array} entities.Card
// @Failure 400 {object} ports.ErrorResponse
// @Failure 500 {object} ports.ErrorResponse
// @Router /cards [get]
func (h *CardHandler) ListCards(c echo.Context) error {
	projectID, err := projectScope(c)
	if err != nil {
		return err
	}

	filter := ports.CardFilter{ProjectID: projectID}
	switch sort := ports.CardSort(c.QueryParam("sort")); sort {
	case "", ports.CardSortCreatedAt:
		filter.Sort = ports.CardSortCreatedAt
	case ports.CardSortPosition:
		filter.Sort = sort
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid sort parameter")
	}

	cards, err := h.cardService.ListCards(c.Request().Context(), filter)
	if err != nil {
		return storeFailure(h.logger, "List cards", err)
	}

	return c.JSON(http.StatusOK, cards)
}

// GetCard godoc
// @Summary Get card by ID
// @Tags cards
// @Produce json
// @Param id path int true "Card ID"
// @Param project_id query int false "Project scope"
// @Success 200 {object} entities.Card
// @Failure 404 {object} ports.ErrorResponse
// @Router /cards/{id} [get]
func (h *CardHandler) GetCard(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	projectID, err := projectScope(c)
	if err != nil {
		return err
	}

	card, err := h.cardService.GetCard(c.Request().Context(), id, projectID)
	if err != nil {
		return cardError(h.logger, "Get card", id, err)
	}

	return c.JSON(http.StatusOK, card)
}

// CreateCard godoc
// @Summary Create a card
// @Description Create a card; absent fields take their defaults (column todo, priority medium, position 0)
// @Tags cards
// @Accept json
// @Produce json
// @Param project_id query int false "Project the card belongs to"
// @Param request body ports.CreateCardRequest true "Card data"
// @Success 201 {object} entities.Card
// @Failure 400 {object} ports.ErrorResponse
// @Failure 500 {object} ports.ErrorResponse
// @Router /cards [post]
func (h *CardHandler) CreateCard(c echo.Context) error {
	projectID, err := projectScope(c)
	if err != nil {
		return err
	}

	var req ports.CreateCardRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	if req.ProjectID == nil {
		req.ProjectID = projectID
	}

	card, err := h.cardService.CreateCard(c.Request().Context(), req)
	if err != nil {
		return storeFailure(h.logger, "Create card", err)
	}

	return c.JSON(http.StatusCreated, card)
}

// UpdateCard godoc
// @Summary Update a card
// @Description Partially update a card. Empty strings clear label and date fields.
// @Tags cards
// @Accept json
// @Produce json
// @Param id path int true "Card ID"
// @Param project_id query int false "Project scope"
// @Param request body ports.UpdateCardRequest true "Fields to change"
// @Success 200 {object} entities.Card
// @Failure 400 {object} ports.ErrorResponse
// @Failure 404 {object} ports.ErrorResponse
// @Router /cards/{id} [put]
// @Router /cards/{id} [patch]
func (h *CardHandler) UpdateCard(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	projectID, err := projectScope(c)
	if err != nil {
		return err
	}

	var req ports.UpdateCardRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	card, err := h.cardService.UpdateCard(c.Request().Context(), id, projectID, req)
	if err != nil {
		return cardError(h.logger, "Update card", id, err)
	}

	return c.JSON(http.StatusOK, card)
}

// DeleteCard godoc
// @Summary Delete a card
// @Description Succeeds whether or not the card existed
// @Tags cards
// @Produce json
// @Param id path int true "Card ID"
// @Param project_id query int false "Project scope"
// @Success 200 {object} ports.SuccessResponse
// @Failure 500 {object} ports.ErrorResponse
// @Router /cards/{id} [delete]
func (h *CardHandler) DeleteCard(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	projectID, err := projectScope(c)
	if err != nil {
		return err
	}

	if err := h.cardService.DeleteCard(c.Request().Context(), id, projectID); err != nil {
		return storeFailure(h.logger, "Delete card", err, "card_id", id)
	}

	return c.JSON(http.StatusOK, ports.SuccessResponse{Success: true})
}

// ArchiveCard godoc
// @Summary Archive a card
// @Tags cards
// @Produce json
// @Param id path int true "Card ID"
// @Success 200 {object} entities.Card
// @Failure 404 {object} ports.ErrorResponse
// @Router /cards/{id}/archive [post]
func (h *CardHandler) ArchiveCard(c echo.Context) error {
	return h.move(c, "Archive card", h.cardService.ArchiveCard)
}

// RestoreCard godoc
// @Summary Restore an archived card to done
// @Tags cards
// @Produce json
// @Param id path int true "Card ID"
// @Success 200 {object} entities.Card
// @Failure 404 {object} ports.ErrorResponse
// @Router /cards/{id}/restore [post]
func (h *CardHandler) RestoreCard(c echo.Context) error {
	return h.move(c, "Restore card", h.cardService.RestoreCard)
}

func (h *CardHandler) move(c echo.Context, action string, fn func(ctx context.Context, id int64, projectID *int64) (*entities.Card, error)) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	projectID, err := projectScope(c)
	if err != nil {
		return err
	}

	card, err := fn(c.Request().Context(), id, projectID)
	if err != nil {
		return cardError(h.logger, action, id, err)
	}

	return c.JSON(http.StatusOK, card)
}

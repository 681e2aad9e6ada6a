package services

import (
	"context"
	"fmt"

	"github.com/kanbancal/core/internal/domain/entities"
	"github.com/kanbancal/core/internal/infrastructure/logger"
	"github.com/kanbancal/core/internal/ports"
)

// CardService handles board card operations
type CardService struct {
	cardRepo ports.CardRepository
	logger   *logger.Logger
}

// NewCardService creates a new card service
func NewCardService(cardRepo ports.CardRepository, logger *logger.Logger) *CardService {
	return &CardService{
		cardRepo: cardRepo,
		logger:   logger.WithComponent("card_service"),
	}
}

// ListCards returns the cards on the board, optionally scoped to a project
func (s *CardService) ListCards(ctx context.Context, filter ports.CardFilter) ([]entities.Card, error) {
	cards, err := s.cardRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	return cards, nil
}

// GetCard retrieves a card by ID
func (s *CardService) GetCard(ctx context.Context, id int64, projectID *int64) (*entities.Card, error) {
	res, err := s.cardRepo.GetByID(ctx, id, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	card, ok := res.Get()
	if !ok {
		return nil, entities.ErrCardNotFound
	}

	return &card, nil
}

// CreateCard inserts a card, filling the documented defaults for absent fields
func (s *CardService) CreateCard(ctx context.Context, req ports.CreateCardRequest) (*entities.Card, error) {
	card, err := s.cardRepo.Create(ctx, newCardRecord(req))
	if err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	s.logger.Infow("Card created", "card_id", card.ID, "column", card.ColumnName)

	return card, nil
}

// UpdateCard applies a partial update to a card
func (s *CardService) UpdateCard(ctx context.Context, id int64, projectID *int64, req ports.UpdateCardRequest) (*entities.Card, error) {
	return s.patch(ctx, id, projectID, cardPatch(req))
}

// DeleteCard removes a card. Deleting a card that does not exist succeeds.
func (s *CardService) DeleteCard(ctx context.Context, id int64, projectID *int64) error {
	if err := s.cardRepo.Delete(ctx, id, projectID); err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}

	s.logger.Infow("Card deleted", "card_id", id)

	return nil
}

// ArchiveCard moves a card into the archive column
func (s *CardService) ArchiveCard(ctx context.Context, id int64, projectID *int64) (*entities.Card, error) {
	return s.patch(ctx, id, projectID, ports.Record{"column_name": entities.ColumnArchive})
}

// RestoreCard brings an archived card back to the done column
func (s *CardService) RestoreCard(ctx context.Context, id int64, projectID *int64) (*entities.Card, error) {
	return s.patch(ctx, id, projectID, ports.Record{"column_name": entities.ColumnDone})
}

func (s *CardService) patch(ctx context.Context, id int64, projectID *int64, patch ports.Record) (*entities.Card, error) {
	res, err := s.cardRepo.Update(ctx, id, projectID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update card: %w", err)
	}

	card, ok := res.Get()
	if !ok {
		return nil, entities.ErrCardNotFound
	}

	s.logger.Infow("Card updated", "card_id", card.ID, "fields", len(patch))

	return &card, nil
}

func newCardRecord(req ports.CreateCardRequest) ports.Record {
	record := ports.Record{
		"title":       req.Title,
		"description": stringOr(req.Description, ""),
		"column_name": stringOr(req.ColumnName, entities.DefaultColumn),
		"assignee":    stringOr(req.Assignee, ""),
		"issue_type":  stringOr(req.IssueType, entities.DefaultIssueType),
		"git_issue":   stringOr(req.GitIssue, ""),
		"priority":    stringOr(req.Priority, entities.DefaultPriority),
		"position":    0,
	}

	if req.Position != nil {
		record["position"] = *req.Position
	}
	if req.ProjectID != nil {
		record["project_id"] = *req.ProjectID
	}

	// optional columns are only sent when they carry a value
	for column, value := range map[string]*string{
		"label":      req.Label,
		"due_date":   req.DueDate,
		"start_date": req.StartDate,
		"end_date":   req.EndDate,
	} {
		if value != nil && *value != "" {
			record[column] = *value
		}
	}

	return record
}

func cardPatch(req ports.UpdateCardRequest) ports.Record {
	patch := ports.Record{}

	for column, value := range map[string]*string{
		"title":       req.Title,
		"description": req.Description,
		"column_name": req.ColumnName,
		"assignee":    req.Assignee,
		"issue_type":  req.IssueType,
		"git_issue":   req.GitIssue,
		"priority":    req.Priority,
	} {
		if value != nil {
			patch[column] = *value
		}
	}

	// empty strings clear the nullable columns
	for column, value := range map[string]*string{
		"label":      req.Label,
		"due_date":   req.DueDate,
		"start_date": req.StartDate,
		"end_date":   req.EndDate,
	} {
		if value == nil {
			continue
		}
		if *value == "" {
			patch[column] = nil
		} else {
			patch[column] = *value
		}
	}

	if req.Position != nil {
		patch["position"] = *req.Position
	}
	if req.ProjectID != nil {
		patch["project_id"] = *req.ProjectID
	}

	return patch
}

func stringOr(value *string, fallback string) string {
	if value == nil {
		return fallback
	}
	return *value
}

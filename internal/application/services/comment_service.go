package services

import (
	"context"
	"fmt"

	"github.com/kanbancal/core/internal/domain/entities"
	"github.com/kanbancal/core/internal/infrastructure/logger"
	"github.com/kanbancal/core/internal/ports"
)

// CommentService handles comments left on cards
type CommentService struct {
	commentRepo ports.CommentRepository
	logger      *logger.Logger
}

// NewCommentService creates a new comment service
func NewCommentService(commentRepo ports.CommentRepository, logger *logger.Logger) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		logger:      logger.WithComponent("comment_service"),
	}
}

// ListComments returns a card's comments, oldest first
func (s *CommentService) ListComments(ctx context.Context, cardID int64) ([]entities.Comment, error) {
	comments, err := s.commentRepo.ListByCard(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return comments, nil
}

// AddComment attaches a comment to a card. The card reference is enforced by the store.
func (s *CommentService) AddComment(ctx context.Context, cardID int64, req ports.CreateCommentRequest) (*entities.Comment, error) {
	comment, err := s.commentRepo.Create(ctx, ports.Record{
		"card_id": cardID,
		"author":  req.Author,
		"content": req.Content,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	s.logger.Infow("Comment added", "comment_id", comment.ID, "card_id", cardID)

	return comment, nil
}

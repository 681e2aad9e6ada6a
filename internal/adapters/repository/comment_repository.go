package repository

import (
	"context"
	"fmt"

	"github.com/kanbancal/core/internal/domain/entities"
	"github.com/kanbancal/core/internal/ports"
)

// CommentRepositoryImpl implements the CommentRepository interface
type CommentRepositoryImpl struct {
	store ports.TableStore
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(store ports.TableStore) ports.CommentRepository {
	return &CommentRepositoryImpl{store: store}
}

func (r *CommentRepositoryImpl) ListByCard(ctx context.Context, cardID int64) ([]entities.Comment, error) {
	comments := []entities.Comment{}
	q := ports.Query{
		Table:   entities.TableComments,
		Filters: []ports.Filter{ports.Eq("card_id", cardID)},
		Order:   []ports.Order{ports.Asc("created_at"), ports.Asc("id")},
	}
	if err := r.store.Select(ctx, q, &comments); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	return comments, nil
}

func (r *CommentRepositoryImpl) Create(ctx context.Context, record ports.Record) (*entities.Comment, error) {
	var comments []entities.Comment
	if err := r.store.Insert(ctx, entities.TableComments, record, &comments); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	if len(comments) == 0 {
		return nil, fmt.Errorf("create comment: store returned no row")
	}

	return &comments[0], nil
}

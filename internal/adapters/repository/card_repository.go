package repository

import (
	"context"
	"fmt"

	"github.com/kanbancal/core/internal/domain/entities"
	"github.com/kanbancal/core/internal/ports"
)

// CardRepositoryImpl implements the CardRepository interface
type CardRepositoryImpl struct {
	store ports.TableStore
}

// NewCardRepository creates a new card repository
func NewCardRepository(store ports.TableStore) ports.CardRepository {
	return &CardRepositoryImpl{store: store}
}

func (r *CardRepositoryImpl) List(ctx context.Context, filter ports.CardFilter) ([]entities.Card, error) {
	q := ports.Query{Table: entities.TableCards}
	if filter.ProjectID != nil {
		q.Filters = append(q.Filters, ports.Eq("project_id", *filter.ProjectID))
	}

	switch filter.Sort {
	case ports.CardSortPosition:
		q.Order = []ports.Order{ports.Asc("position"), ports.Desc("created_at"), ports.Desc("id")}
	default:
		q.Order = []ports.Order{ports.Desc("created_at"), ports.Desc("id")}
	}

	cards := []entities.Card{}
	if err := r.store.Select(ctx, q, &cards); err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}

	return cards, nil
}

func (r *CardRepositoryImpl) GetByID(ctx context.Context, id int64, projectID *int64) (ports.Result[entities.Card], error) {
	var cards []entities.Card
	q := ports.Query{
		Table:   entities.TableCards,
		Filters: cardFilters(id, projectID),
		Limit:   1,
	}
	if err := r.store.Select(ctx, q, &cards); err != nil {
		return ports.NotFound[entities.Card](), fmt.Errorf("get card by id: %w", err)
	}

	return ports.FirstOf(cards), nil
}

func (r *CardRepositoryImpl) Create(ctx context.Context, record ports.Record) (*entities.Card, error) {
	var cards []entities.Card
	if err := r.store.Insert(ctx, entities.TableCards, record, &cards); err != nil {
		return nil, fmt.Errorf("create card: %w", err)
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("create card: store returned no row")
	}

	return &cards[0], nil
}

func (r *CardRepositoryImpl) Update(ctx context.Context, id int64, projectID *int64, patch ports.Record) (ports.Result[entities.Card], error) {
	if len(patch) == 0 {
		return r.GetByID(ctx, id, projectID)
	}

	var cards []entities.Card
	if err := r.store.Update(ctx, entities.TableCards, patch, cardFilters(id, projectID), &cards); err != nil {
		return ports.NotFound[entities.Card](), fmt.Errorf("update card: %w", err)
	}

	return ports.FirstOf(cards), nil
}

func (r *CardRepositoryImpl) Delete(ctx context.Context, id int64, projectID *int64) error {
	if err := r.store.Delete(ctx, entities.TableCards, cardFilters(id, projectID)); err != nil {
		return fmt.Errorf("delete card: %w", err)
	}

	return nil
}

func cardFilters(id int64, projectID *int64) []ports.Filter {
	filters := []ports.Filter{ports.Eq("id", id)}
	if projectID != nil {
		filters = append(filters, ports.Eq("project_id", *projectID))
	}
	return filters
}

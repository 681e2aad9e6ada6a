package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanbancal/core/internal/domain/entities"
	"github.com/kanbancal/core/internal/ports"
)

func TestCardRepositoryListOrdering(t *testing.T) {
	ctx := context.Background()
	repo := NewCardRepository(newTestStore(t))

	first, err := repo.Create(ctx, ports.Record{"title": "first", "position": 2})
	require.NoError(t, err)
	second, err := repo.Create(ctx, ports.Record{"title": "second", "position": 1})
	require.NoError(t, err)

	byCreated, err := repo.List(ctx, ports.CardFilter{})
	require.NoError(t, err)
	require.Len(t, byCreated, 2)
	assert.Equal(t, second.ID, byCreated[0].ID, "newest first")
	assert.Equal(t, first.ID, byCreated[1].ID)

	byPosition, err := repo.List(ctx, ports.CardFilter{Sort: ports.CardSortPosition})
	require.NoError(t, err)
	require.Len(t, byPosition, 2)
	assert.Equal(t, second.ID, byPosition[0].ID)
	assert.Equal(t, first.ID, byPosition[1].ID)
}

func TestCardRepositoryListEmptyIsNotNil(t *testing.T) {
	repo := NewCardRepository(newTestStore(t))

	cards, err := repo.List(context.Background(), ports.CardFilter{})
	require.NoError(t, err)
	assert.NotNil(t, cards)
	assert.Empty(t, cards)
}

func TestCardRepositoryProjectScope(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	projects := NewProjectRepository(store)
	cards := NewCardRepository(store)

	alpha, err := projects.Create(ctx, ports.Record{"name": "alpha", "pin": "1111"})
	require.NoError(t, err)
	beta, err := projects.Create(ctx, ports.Record{"name": "beta", "pin": "2222"})
	require.NoError(t, err)

	card, err := cards.Create(ctx, ports.Record{"title": "scoped", "project_id": alpha.ID})
	require.NoError(t, err)
	_, err = cards.Create(ctx, ports.Record{"title": "other", "project_id": beta.ID})
	require.NoError(t, err)

	listed, err := cards.List(ctx, ports.CardFilter{ProjectID: &alpha.ID})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, card.ID, listed[0].ID)

	res, err := cards.GetByID(ctx, card.ID, &beta.ID)
	require.NoError(t, err)
	assert.False(t, res.IsFound(), "card must not be visible from another project")

	res, err = cards.GetByID(ctx, card.ID, &alpha.ID)
	require.NoError(t, err)
	got, ok := res.Get()
	require.True(t, ok)
	assert.True(t, got.BelongsTo(alpha.ID))

	updated, err := cards.Update(ctx, card.ID, &beta.ID, ports.Record{"title": "hijacked"})
	require.NoError(t, err)
	assert.False(t, updated.IsFound())
}

func TestCardRepositoryUpdateMissing(t *testing.T) {
	repo := NewCardRepository(newTestStore(t))

	res, err := repo.Update(context.Background(), 404, nil, ports.Record{"column_name": "archive"})
	require.NoError(t, err)
	assert.False(t, res.IsFound())
}

func TestCardRepositoryEmptyPatchReturnsCurrentRow(t *testing.T) {
	ctx := context.Background()
	repo := NewCardRepository(newTestStore(t))

	card, err := repo.Create(ctx, ports.Record{"title": "unchanged"})
	require.NoError(t, err)

	res, err := repo.Update(ctx, card.ID, nil, ports.Record{})
	require.NoError(t, err)
	got, ok := res.Get()
	require.True(t, ok)
	assert.Equal(t, "unchanged", got.Title)
}

func TestCommentRepositoryOrderingAndCascade(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	cards := NewCardRepository(store)
	comments := NewCommentRepository(store)

	card, err := cards.Create(ctx, ports.Record{"title": "discussed"})
	require.NoError(t, err)

	for _, content := range []string{"one", "two", "three"} {
		_, err := comments.Create(ctx, ports.Record{"card_id": card.ID, "author": "lee", "content": content})
		require.NoError(t, err)
	}

	listed, err := comments.ListByCard(ctx, card.ID)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "one", listed[0].Content)
	assert.Equal(t, "two", listed[1].Content)
	assert.Equal(t, "three", listed[2].Content)

	require.NoError(t, cards.Delete(ctx, card.ID, nil))

	listed, err = comments.ListByCard(ctx, card.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestCommentRepositoryRejectsUnknownCard(t *testing.T) {
	comments := NewCommentRepository(newTestStore(t))

	_, err := comments.Create(context.Background(), ports.Record{"card_id": int64(77), "author": "lee", "content": "orphan"})
	assert.Error(t, err)
}

func TestProjectRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository(newTestStore(t))

	_, err := repo.Create(ctx, ports.Record{"name": "zeta", "pin": "9"})
	require.NoError(t, err)
	alpha, err := repo.Create(ctx, ports.Record{"name": "alpha", "pin": "1234 "})
	require.NoError(t, err)

	listed, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "alpha", listed[0].Name)
	assert.Equal(t, "zeta", listed[1].Name)

	res, err := repo.GetByID(ctx, alpha.ID)
	require.NoError(t, err)
	project, ok := res.Get()
	require.True(t, ok)
	assert.Equal(t, "1234 ", project.PIN)

	res, err = repo.GetByID(ctx, 999)
	require.NoError(t, err)
	assert.False(t, res.IsFound())
	missing, ok := res.Get()
	assert.False(t, ok)
	assert.Equal(t, entities.Project{}, missing)
}

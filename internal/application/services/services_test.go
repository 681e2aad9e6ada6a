package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanbancal/core/internal/domain/entities"
	"github.com/kanbancal/core/internal/infrastructure/logger"
	"github.com/kanbancal/core/internal/ports"
)

type stubCardRepo struct {
	cards      map[int64]entities.Card
	lastRecord ports.Record
	lastPatch  ports.Record
	err        error
}

func (r *stubCardRepo) List(ctx context.Context, filter ports.CardFilter) ([]entities.Card, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := []entities.Card{}
	for _, c := range r.cards {
		out = append(out, c)
	}
	return out, nil
}

func (r *stubCardRepo) GetByID(ctx context.Context, id int64, projectID *int64) (ports.Result[entities.Card], error) {
	if r.err != nil {
		return ports.NotFound[entities.Card](), r.err
	}
	c, ok := r.cards[id]
	if !ok {
		return ports.NotFound[entities.Card](), nil
	}
	return ports.Found(c), nil
}

func (r *stubCardRepo) Create(ctx context.Context, record ports.Record) (*entities.Card, error) {
	r.lastRecord = record
	if r.err != nil {
		return nil, r.err
	}
	return &entities.Card{ID: 1, Title: record["title"].(string), ColumnName: record["column_name"].(string)}, nil
}

func (r *stubCardRepo) Update(ctx context.Context, id int64, projectID *int64, patch ports.Record) (ports.Result[entities.Card], error) {
	r.lastPatch = patch
	if r.err != nil {
		return ports.NotFound[entities.Card](), r.err
	}
	c, ok := r.cards[id]
	if !ok {
		return ports.NotFound[entities.Card](), nil
	}
	if col, ok := patch["column_name"].(string); ok {
		c.ColumnName = col
	}
	r.cards[id] = c
	return ports.Found(c), nil
}

func (r *stubCardRepo) Delete(ctx context.Context, id int64, projectID *int64) error {
	delete(r.cards, id)
	return r.err
}

type stubProjectRepo struct {
	projects map[int64]entities.Project
	err      error
}

func (r *stubProjectRepo) List(ctx context.Context) ([]entities.ProjectSummary, error) {
	out := []entities.ProjectSummary{}
	for _, p := range r.projects {
		out = append(out, p.Summary())
	}
	return out, r.err
}

func (r *stubProjectRepo) GetByID(ctx context.Context, id int64) (ports.Result[entities.Project], error) {
	if r.err != nil {
		return ports.NotFound[entities.Project](), r.err
	}
	p, ok := r.projects[id]
	if !ok {
		return ports.NotFound[entities.Project](), nil
	}
	return ports.Found(p), nil
}

func (r *stubProjectRepo) Create(ctx context.Context, record ports.Record) (*entities.Project, error) {
	if r.err != nil {
		return nil, r.err
	}
	p := entities.Project{ID: int64(len(r.projects) + 1), Name: record["name"].(string), PIN: record["pin"].(string)}
	r.projects[p.ID] = p
	return &p, nil
}

func strPtr(s string) *string { return &s }

func TestCreateCardAppliesDefaults(t *testing.T) {
	repo := &stubCardRepo{}
	svc := NewCardService(repo, logger.NewNop())

	card, err := svc.CreateCard(context.Background(), ports.CreateCardRequest{Title: "Fix bug"})
	require.NoError(t, err)
	assert.Equal(t, "todo", card.ColumnName)

	assert.Equal(t, ports.Record{
		"title":       "Fix bug",
		"description": "",
		"column_name": "todo",
		"assignee":    "",
		"issue_type":  "task",
		"git_issue":   "",
		"priority":    "medium",
		"position":    0,
	}, repo.lastRecord)
}

func TestCreateCardIncludesOptionalColumnsOnlyWhenSet(t *testing.T) {
	repo := &stubCardRepo{}
	svc := NewCardService(repo, logger.NewNop())
	position := 4
	projectID := int64(7)

	_, err := svc.CreateCard(context.Background(), ports.CreateCardRequest{
		Title:      "Plan sprint",
		ColumnName: strPtr("in-progress"),
		Label:      strPtr("backend"),
		DueDate:    strPtr("2024-05-01"),
		StartDate:  strPtr(""),
		Position:   &position,
		ProjectID:  &projectID,
	})
	require.NoError(t, err)

	assert.Equal(t, "in-progress", repo.lastRecord["column_name"])
	assert.Equal(t, "backend", repo.lastRecord["label"])
	assert.Equal(t, "2024-05-01", repo.lastRecord["due_date"])
	assert.Equal(t, 4, repo.lastRecord["position"])
	assert.Equal(t, int64(7), repo.lastRecord["project_id"])
	assert.NotContains(t, repo.lastRecord, "start_date")
	assert.NotContains(t, repo.lastRecord, "end_date")
}

func TestCardPatchClearsOptionalColumns(t *testing.T) {
	patch := cardPatch(ports.UpdateCardRequest{
		Title:   strPtr("Renamed"),
		DueDate: strPtr(""),
		Label:   strPtr("ops"),
	})

	assert.Equal(t, ports.Record{"title": "Renamed", "due_date": nil, "label": "ops"}, patch)
	assert.Empty(t, cardPatch(ports.UpdateCardRequest{}))
}

func TestArchiveAndRestoreCard(t *testing.T) {
	repo := &stubCardRepo{cards: map[int64]entities.Card{3: {ID: 3, Title: "Ship", ColumnName: "done"}}}
	svc := NewCardService(repo, logger.NewNop())

	card, err := svc.ArchiveCard(context.Background(), 3, nil)
	require.NoError(t, err)
	assert.True(t, card.IsArchived())
	assert.Equal(t, ports.Record{"column_name": "archive"}, repo.lastPatch)

	card, err = svc.RestoreCard(context.Background(), 3, nil)
	require.NoError(t, err)
	assert.Equal(t, "done", card.ColumnName)
	assert.Equal(t, ports.Record{"column_name": "done"}, repo.lastPatch)
}

func TestCardNotFound(t *testing.T) {
	svc := NewCardService(&stubCardRepo{cards: map[int64]entities.Card{}}, logger.NewNop())

	_, err := svc.GetCard(context.Background(), 42, nil)
	assert.ErrorIs(t, err, entities.ErrCardNotFound)

	_, err = svc.ArchiveCard(context.Background(), 42, nil)
	assert.ErrorIs(t, err, entities.ErrCardNotFound)

	_, err = svc.UpdateCard(context.Background(), 42, nil, ports.UpdateCardRequest{Title: strPtr("x")})
	assert.ErrorIs(t, err, entities.ErrCardNotFound)

	assert.NoError(t, svc.DeleteCard(context.Background(), 42, nil))
}

func TestCardStoreErrorIsWrapped(t *testing.T) {
	storeErr := errors.New("connection refused")
	svc := NewCardService(&stubCardRepo{err: storeErr}, logger.NewNop())

	_, err := svc.GetCard(context.Background(), 1, nil)
	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, entities.ErrCardNotFound)

	_, err = svc.ListCards(context.Background(), ports.CardFilter{})
	assert.ErrorIs(t, err, storeErr)
}

func TestVerifyProject(t *testing.T) {
	repo := &stubProjectRepo{projects: map[int64]entities.Project{
		1: {ID: 1, Name: "Calendar", PIN: "1234 "},
	}}
	svc := NewProjectService(repo, logger.NewNop())
	ctx := context.Background()

	summary, err := svc.VerifyProject(ctx, ports.VerifyProjectRequest{ProjectID: ports.NumericID{Value: 1, Set: true}, PIN: "1234"})
	require.NoError(t, err)
	assert.Equal(t, entities.ProjectSummary{ID: 1, Name: "Calendar"}, *summary)

	_, err = svc.VerifyProject(ctx, ports.VerifyProjectRequest{ProjectID: ports.NumericID{Value: 1, Set: true}, PIN: "0000"})
	assert.ErrorIs(t, err, entities.ErrInvalidPIN)

	_, err = svc.VerifyProject(ctx, ports.VerifyProjectRequest{ProjectID: ports.NumericID{Value: 2, Set: true}, PIN: "1234"})
	assert.ErrorIs(t, err, entities.ErrProjectNotFound)

	_, err = svc.VerifyProject(ctx, ports.VerifyProjectRequest{PIN: "1234"})
	assert.ErrorIs(t, err, entities.ErrMissingCredentials)

	_, err = svc.VerifyProject(ctx, ports.VerifyProjectRequest{ProjectID: ports.NumericID{Value: 1, Set: true}, PIN: "   "})
	assert.ErrorIs(t, err, entities.ErrMissingCredentials)
}

func TestCreateProjectTrimsInput(t *testing.T) {
	repo := &stubProjectRepo{projects: map[int64]entities.Project{}}
	svc := NewProjectService(repo, logger.NewNop())

	summary, err := svc.CreateProject(context.Background(), ports.CreateProjectRequest{Name: " Roadmap ", PIN: " 42 "})
	require.NoError(t, err)
	assert.Equal(t, "Roadmap", summary.Name)
	assert.Equal(t, "42", repo.projects[summary.ID].PIN)

	_, err = svc.CreateProject(context.Background(), ports.CreateProjectRequest{Name: "x", PIN: " "})
	assert.Error(t, err)
}

package repository

import (
	"context"
	"fmt"

	"github.com/kanbancal/core/internal/domain/entities"
	"github.com/kanbancal/core/internal/ports"
)

// ProjectRepositoryImpl implements the ProjectRepository interface
type ProjectRepositoryImpl struct {
	store ports.TableStore
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(store ports.TableStore) ports.ProjectRepository {
	return &ProjectRepositoryImpl{store: store}
}

func (r *ProjectRepositoryImpl) List(ctx context.Context) ([]entities.ProjectSummary, error) {
	projects := []entities.ProjectSummary{}
	q := ports.Query{
		Table:   entities.TableProjects,
		Columns: []string{"id", "name"},
		Order:   []ports.Order{ports.Asc("name"), ports.Asc("id")},
	}
	if err := r.store.Select(ctx, q, &projects); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	return projects, nil
}

func (r *ProjectRepositoryImpl) GetByID(ctx context.Context, id int64) (ports.Result[entities.Project], error) {
	var projects []entities.Project
	q := ports.Query{
		Table:   entities.TableProjects,
		Filters: []ports.Filter{ports.Eq("id", id)},
		Limit:   1,
	}
	if err := r.store.Select(ctx, q, &projects); err != nil {
		return ports.NotFound[entities.Project](), fmt.Errorf("get project by id: %w", err)
	}

	return ports.FirstOf(projects), nil
}

func (r *ProjectRepositoryImpl) Create(ctx context.Context, record ports.Record) (*entities.Project, error) {
	var projects []entities.Project
	if err := r.store.Insert(ctx, entities.TableProjects, record, &projects); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	if len(projects) == 0 {
		return nil, fmt.Errorf("create project: store returned no row")
	}

	return &projects[0], nil
}

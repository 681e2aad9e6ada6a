package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/kanbancal/core/internal/domain/entities"
	"github.com/kanbancal/core/internal/infrastructure/logger"
	"github.com/kanbancal/core/internal/ports"
)

// ProjectService handles project listing and PIN verification
type ProjectService struct {
	projectRepo ports.ProjectRepository
	logger      *logger.Logger
}

// NewProjectService creates a new project service
func NewProjectService(projectRepo ports.ProjectRepository, logger *logger.Logger) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		logger:      logger.WithComponent("project_service"),
	}
}

// ListProjects returns every project's id and name ordered by name
func (s *ProjectService) ListProjects(ctx context.Context) ([]entities.ProjectSummary, error) {
	projects, err := s.projectRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return projects, nil
}

// VerifyProject checks a submitted PIN against the project's stored PIN
func (s *ProjectService) VerifyProject(ctx context.Context, req ports.VerifyProjectRequest) (*entities.ProjectSummary, error) {
	if !req.ProjectID.Set || strings.TrimSpace(req.PIN) == "" {
		return nil, entities.ErrMissingCredentials
	}

	res, err := s.projectRepo.GetByID(ctx, req.ProjectID.Value)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	project, ok := res.Get()
	if !ok {
		return nil, entities.ErrProjectNotFound
	}

	if err := project.VerifyPIN(req.PIN); err != nil {
		return nil, err
	}

	summary := project.Summary()
	return &summary, nil
}

// CreateProject stores a new project with its PIN
func (s *ProjectService) CreateProject(ctx context.Context, req ports.CreateProjectRequest) (*entities.ProjectSummary, error) {
	name := strings.TrimSpace(req.Name)
	pin := strings.TrimSpace(req.PIN)
	if name == "" || pin == "" {
		return nil, fmt.Errorf("project name and pin are required")
	}

	project, err := s.projectRepo.Create(ctx, ports.Record{"name": name, "pin": pin})
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.logger.Infow("Project created", "project_id", project.ID, "name", project.Name)

	summary := project.Summary()
	return &summary, nil
}

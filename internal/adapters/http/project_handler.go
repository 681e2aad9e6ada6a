package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kanbancal/core/internal/domain/entities"
	"github.com/kanbancal/core/internal/infrastructure/logger"
	"github.com/kanbancal/core/internal/ports"
)

// ProjectHandler handles project-related requests
type ProjectHandler struct {
	projectService ports.ProjectService
	logger         *logger.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService ports.ProjectService, logger *logger.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		logger:         logger.WithComponent("project_handler"),
	}
}

// ListProjects godoc
// @Summary List projects
// @Description Project ids and names ordered by name. PINs are never returned.
// @Tags projects
// @Produce json
// @Success 200 {array} entities.ProjectSummary
// @Failure 500 {object} ports.ErrorResponse
// @Router /projects [get]
func (h *ProjectHandler) ListProjects(c echo.Context) error {
	projects, err := h.projectService.ListProjects(c.Request().Context())
	if err != nil {
		return storeFailure(h.logger, "List projects", err)
	}

	return c.JSON(http.StatusOK, projects)
}

// VerifyProject godoc
// @Summary Verify a project PIN
// @Description Compares the submitted PIN with the stored one, both trimmed
// @Tags projects
// @Accept json
// @Produce json
// @Param request body ports.VerifyProjectRequest true "Project id and PIN"
// @Success 200 {object} entities.ProjectSummary
// @Failure 400 {object} ports.ErrorResponse
// @Failure 401 {object} ports.ErrorResponse
// @Failure 404 {object} ports.ErrorResponse
// @Router /projects/verify [post]
func (h *ProjectHandler) VerifyProject(c echo.Context) error {
	var req ports.VerifyProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	project, err := h.projectService.VerifyProject(c.Request().Context(), req)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, project)
	case errors.Is(err, entities.ErrMissingCredentials):
		return echo.NewHTTPError(http.StatusBadRequest, "project_id and pin are required")
	case errors.Is(err, entities.ErrProjectNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Project not found")
	case errors.Is(err, entities.ErrInvalidPIN):
		h.logger.LogSecurityEvent("pin_mismatch", c.RealIP(), map[string]interface{}{
			"project_id": req.ProjectID.Value,
		})
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid PIN")
	default:
		return storeFailure(h.logger, "Verify project", err, "project_id", req.ProjectID.Value)
	}
}

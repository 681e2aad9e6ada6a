package ports

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/kanbancal/core/internal/domain/entities"
)

// CardService interface for board card operations
type CardService interface {
	ListCards(ctx context.Context, filter CardFilter) ([]entities.Card, error)
	GetCard(ctx context.Context, id int64, projectID *int64) (*entities.Card, error)
	CreateCard(ctx context.Context, req CreateCardRequest) (*entities.Card, error)
	UpdateCard(ctx context.Context, id int64, projectID *int64, req UpdateCardRequest) (*entities.Card, error)
	DeleteCard(ctx context.Context, id int64, projectID *int64) error
	ArchiveCard(ctx context.Context, id int64, projectID *int64) (*entities.Card, error)
	RestoreCard(ctx context.Context, id int64, projectID *int64) (*entities.Card, error)
}

// CommentService interface for card comment operations
type CommentService interface {
	ListComments(ctx context.Context, cardID int64) ([]entities.Comment, error)
	AddComment(ctx context.Context, cardID int64, req CreateCommentRequest) (*entities.Comment, error)
}

// ProjectService interface for project operations
type ProjectService interface {
	ListProjects(ctx context.Context) ([]entities.ProjectSummary, error)
	VerifyProject(ctx context.Context, req VerifyProjectRequest) (*entities.ProjectSummary, error)
	CreateProject(ctx context.Context, req CreateProjectRequest) (*entities.ProjectSummary, error)
}

// Request/Response Types (schema v1)

// Card related types
type CreateCardRequest struct {
	Title       string  `json:"title" validate:"required,max=500"`
	Description *string `json:"description" validate:"omitempty,max=10000"`
	ColumnName  *string `json:"column_name" validate:"omitempty,max=50"`
	Assignee    *string `json:"assignee" validate:"omitempty,max=100"`
	IssueType   *string `json:"issue_type" validate:"omitempty,max=50"`
	GitIssue    *string `json:"git_issue" validate:"omitempty,max=500"`
	Priority    *string `json:"priority" validate:"omitempty,max=20"`
	DueDate     *string `json:"due_date" validate:"omitempty,max=40"`
	StartDate   *string `json:"start_date" validate:"omitempty,max=40"`
	EndDate     *string `json:"end_date" validate:"omitempty,max=40"`
	Position    *int    `json:"position"`
	Label       *string `json:"label" validate:"omitempty,max=100"`
	ProjectID   *int64  `json:"project_id"`
}

// UpdateCardRequest carries a partial update. Absent fields are left alone;
// an empty string clears the optional date and label columns.
type UpdateCardRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=500"`
	Description *string `json:"description" validate:"omitempty,max=10000"`
	ColumnName  *string `json:"column_name" validate:"omitempty,min=1,max=50"`
	Assignee    *string `json:"assignee" validate:"omitempty,max=100"`
	IssueType   *string `json:"issue_type" validate:"omitempty,max=50"`
	GitIssue    *string `json:"git_issue" validate:"omitempty,max=500"`
	Priority    *string `json:"priority" validate:"omitempty,max=20"`
	DueDate     *string `json:"due_date" validate:"omitempty,max=40"`
	StartDate   *string `json:"start_date" validate:"omitempty,max=40"`
	EndDate     *string `json:"end_date" validate:"omitempty,max=40"`
	Position    *int    `json:"position"`
	Label       *string `json:"label" validate:"omitempty,max=100"`
	ProjectID   *int64  `json:"project_id"`
}

// Comment related types
type CreateCommentRequest struct {
	Author  string `json:"author" validate:"required,max=100"`
	Content string `json:"content" validate:"required,max=10000"`
}

// Project related types
type VerifyProjectRequest struct {
	ProjectID NumericID `json:"project_id"`
	PIN       string    `json:"pin"`
}

type CreateProjectRequest struct {
	Name string `json:"name" validate:"required,max=200"`
	PIN  string `json:"pin" validate:"required,max=64"`
}

// NumericID is an identifier that clients may send either as a JSON number or
// as a numeric string.
type NumericID struct {
	Value int64
	Set   bool
}

// UnmarshalJSON implements json.Unmarshaler
func (n *NumericID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*n = NumericID{}
		return nil
	}
	s = strings.TrimSpace(strings.Trim(s, `"`))
	if s == "" {
		*n = NumericID{}
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", s)
	}
	n.Value, n.Set = v, true
	return nil
}

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse is returned by operations with no row to echo back
type SuccessResponse struct {
	Success bool `json:"success"`
}

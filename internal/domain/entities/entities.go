package entities

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SchemaVersion is the version of the request/response schemas served by the API.
const SchemaVersion = "v1"

// Common errors
var (
	ErrCardNotFound       = errors.New("card not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrInvalidPIN         = errors.New("invalid pin")
	ErrMissingCredentials = errors.New("project_id and pin are required")
	ErrInvalidIdentifier  = errors.New("invalid identifier")
	ErrEmptyRecord        = errors.New("record has no columns")
)

// Table names in the store
const (
	TableCards    = "kanban_cards"
	TableComments = "kanban_comments"
	TableProjects = "kanban_projects"
)

// Board columns. Column names are free form; these are the ones the board knows about.
const (
	ColumnTodo       = "todo"
	ColumnInProgress = "in-progress"
	ColumnDone       = "done"
	ColumnArchive    = "archive"
)

// Card defaults applied on creation
const (
	DefaultColumn    = ColumnTodo
	DefaultPriority  = "medium"
	DefaultIssueType = "task"
)

// Card represents a task placed on the kanban board
type Card struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description" db:"description"`
	ColumnName  string    `json:"column_name" db:"column_name"`
	Assignee    *string   `json:"assignee" db:"assignee"`
	IssueType   *string   `json:"issue_type" db:"issue_type"`
	GitIssue    *string   `json:"git_issue" db:"git_issue"`
	Priority    *string   `json:"priority" db:"priority"`
	DueDate     *string   `json:"due_date" db:"due_date"`
	StartDate   *string   `json:"start_date" db:"start_date"`
	EndDate     *string   `json:"end_date" db:"end_date"`
	Position    int       `json:"position" db:"position"`
	Label       *string   `json:"label" db:"label"`
	ProjectID   *int64    `json:"project_id" db:"project_id"`
	CreatedAt   Timestamp `json:"created_at" db:"created_at"`
}

// IsArchived reports whether the card sits in the archive
func (c *Card) IsArchived() bool {
	return c.ColumnName == ColumnArchive
}

// BelongsTo reports whether the card is scoped to the given project
func (c *Card) BelongsTo(projectID int64) bool {
	return c.ProjectID != nil && *c.ProjectID == projectID
}

// Comment is a note left on a card
type Comment struct {
	ID        int64     `json:"id" db:"id"`
	CardID    int64     `json:"card_id" db:"card_id"`
	Author    string    `json:"author" db:"author"`
	Content   string    `json:"content" db:"content"`
	CreatedAt Timestamp `json:"created_at" db:"created_at"`
}

// Project groups cards behind a shared PIN
type Project struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	PIN       string    `json:"-" db:"pin"`
	CreatedAt Timestamp `json:"created_at" db:"created_at"`
}

// ProjectSummary is the public view of a project. The PIN never leaves the store.
type ProjectSummary struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Summary returns the public view of the project
func (p *Project) Summary() ProjectSummary {
	return ProjectSummary{ID: p.ID, Name: p.Name}
}

// VerifyPIN compares a submitted PIN against the stored one. Both sides are trimmed.
func (p *Project) VerifyPIN(pin string) error {
	if strings.TrimSpace(pin) != strings.TrimSpace(p.PIN) {
		return ErrInvalidPIN
	}
	return nil
}

// Timestamp is a store-assigned point in time. Postgres hands back time.Time,
// SQLite hands back text; both scan into the same value.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// Scan implements sql.Scanner
func (t *Timestamp) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
		return nil
	case time.Time:
		t.Time = v.UTC()
		return nil
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	default:
		return fmt.Errorf("timestamp: unsupported source type %T", src)
	}
}

func (t *Timestamp) parse(s string) error {
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("timestamp: cannot parse %q", s)
}

// Value implements driver.Valuer
func (t Timestamp) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.Time, nil
}

// MarshalJSON renders the timestamp as RFC 3339 in UTC, or null when unset
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.UTC().Format(time.RFC3339Nano) + `"`), nil
}

// UnmarshalJSON accepts RFC 3339 strings and null
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		t.Time = time.Time{}
		return nil
	}
	return t.parse(s)
}

package ports

import (
	"context"

	"github.com/kanbancal/core/internal/domain/entities"
)

// Record is a column -> value mapping sent to the store on insert or update
type Record map[string]interface{}

// Filter restricts a query to rows where Column equals Value
type Filter struct {
	Column string
	Value  interface{}
}

// Eq builds an equality filter
func Eq(column string, value interface{}) Filter {
	return Filter{Column: column, Value: value}
}

// Order sorts query results by Column
type Order struct {
	Column     string
	Descending bool
}

// Asc orders by column ascending
func Asc(column string) Order {
	return Order{Column: column}
}

// Desc orders by column descending
func Desc(column string) Order {
	return Order{Column: column, Descending: true}
}

// Query describes a select against one table
type Query struct {
	Table   string
	Columns []string // empty selects every column
	Filters []Filter
	Order   []Order
	Limit   int
}

// TableStore is a table-oriented query interface over the backing database.
// Every method is a single round trip to the store.
type TableStore interface {
	// Select runs the query and scans the rows into dest (pointer to slice)
	Select(ctx context.Context, q Query, dest interface{}) error
	// Insert adds one row and scans the stored row (with generated columns) into dest (pointer to slice)
	Insert(ctx context.Context, table string, record Record, dest interface{}) error
	// Update applies record to every row matching filters and scans the updated rows into dest (pointer to slice)
	Update(ctx context.Context, table string, record Record, filters []Filter, dest interface{}) error
	// Delete removes every row matching filters. Matching nothing is not an error.
	Delete(ctx context.Context, table string, filters []Filter) error
}

// CardSort selects the ordering of card listings
type CardSort string

const (
	CardSortCreatedAt CardSort = "created_at"
	CardSortPosition  CardSort = "position"
)

// CardFilter narrows card listings
type CardFilter struct {
	ProjectID *int64
	Sort      CardSort
}

// CardRepository defines the interface for card data operations
type CardRepository interface {
	List(ctx context.Context, filter CardFilter) ([]entities.Card, error)
	GetByID(ctx context.Context, id int64, projectID *int64) (Result[entities.Card], error)
	Create(ctx context.Context, record Record) (*entities.Card, error)
	Update(ctx context.Context, id int64, projectID *int64, patch Record) (Result[entities.Card], error)
	Delete(ctx context.Context, id int64, projectID *int64) error
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	ListByCard(ctx context.Context, cardID int64) ([]entities.Comment, error)
	Create(ctx context.Context, record Record) (*entities.Comment, error)
}

// ProjectRepository defines the interface for project data operations
type ProjectRepository interface {
	List(ctx context.Context) ([]entities.ProjectSummary, error)
	GetByID(ctx context.Context, id int64) (Result[entities.Project], error)
	Create(ctx context.Context, record Record) (*entities.Project, error)
}

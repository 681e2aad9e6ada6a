package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/kanbancal/core/internal/domain/entities"
	"github.com/kanbancal/core/internal/infrastructure/logger"
	"github.com/kanbancal/core/internal/ports"
)

// ErrUnfilteredWrite guards against updates and deletes that would touch every row
var ErrUnfilteredWrite = errors.New("update and delete require at least one filter")

var identifierPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// QueryObserver is told about every round trip to the store
type QueryObserver func(table, operation string, duration time.Duration, err error)

// SQLTableStore implements ports.TableStore on top of sqlx. Queries are written
// with '?' placeholders and rebound for the connected driver.
type SQLTableStore struct {
	db       *sqlx.DB
	logger   *logger.Logger
	observer QueryObserver
}

// NewTableStore creates a table store over an open connection
func NewTableStore(db *sqlx.DB, log *logger.Logger) *SQLTableStore {
	return &SQLTableStore{
		db:     db,
		logger: log.WithComponent("table_store"),
	}
}

// WithObserver registers a callback for query timings
func (s *SQLTableStore) WithObserver(observer QueryObserver) *SQLTableStore {
	s.observer = observer
	return s
}

func (s *SQLTableStore) Select(ctx context.Context, q ports.Query, dest interface{}) error {
	query, args, err := buildSelect(q)
	if err != nil {
		return err
	}

	return s.run(ctx, q.Table, "select", query, func(query string) error {
		return s.db.SelectContext(ctx, dest, query, args...)
	})
}

func (s *SQLTableStore) Insert(ctx context.Context, table string, record ports.Record, dest interface{}) error {
	query, args, err := buildInsert(table, record)
	if err != nil {
		return err
	}

	return s.run(ctx, table, "insert", query, func(query string) error {
		return s.db.SelectContext(ctx, dest, query, args...)
	})
}

func (s *SQLTableStore) Update(ctx context.Context, table string, record ports.Record, filters []ports.Filter, dest interface{}) error {
	query, args, err := buildUpdate(table, record, filters)
	if err != nil {
		return err
	}

	return s.run(ctx, table, "update", query, func(query string) error {
		return s.db.SelectContext(ctx, dest, query, args...)
	})
}

func (s *SQLTableStore) Delete(ctx context.Context, table string, filters []ports.Filter) error {
	query, args, err := buildDelete(table, filters)
	if err != nil {
		return err
	}

	return s.run(ctx, table, "delete", query, func(query string) error {
		_, err := s.db.ExecContext(ctx, query, args...)
		return err
	})
}

func (s *SQLTableStore) run(ctx context.Context, table, operation, query string, exec func(string) error) error {
	query = s.db.Rebind(query)

	start := time.Now()
	err := exec(query)
	duration := time.Since(start)

	s.logger.LogDatabaseQuery(query, float64(duration.Microseconds())/1000, err)
	if s.observer != nil {
		s.observer(table, operation, duration, err)
	}

	if err != nil {
		return fmt.Errorf("%s %s: %w", operation, table, err)
	}
	return nil
}

func quote(identifier string) (string, error) {
	if !identifierPattern.MatchString(identifier) {
		return "", fmt.Errorf("%w: %q", entities.ErrInvalidIdentifier, identifier)
	}
	return `"` + identifier + `"`, nil
}

func buildSelect(q ports.Query) (string, []interface{}, error) {
	table, err := quote(q.Table)
	if err != nil {
		return "", nil, err
	}

	columns := "*"
	if len(q.Columns) > 0 {
		quoted := make([]string, 0, len(q.Columns))
		for _, c := range q.Columns {
			qc, err := quote(c)
			if err != nil {
				return "", nil, err
			}
			quoted = append(quoted, qc)
		}
		columns = strings.Join(quoted, ", ")
	}

	var sb strings.Builder
	sb.WriteString("SELECT " + columns + " FROM " + table)

	where, args, err := buildWhere(q.Filters)
	if err != nil {
		return "", nil, err
	}
	sb.WriteString(where)

	if len(q.Order) > 0 {
		terms := make([]string, 0, len(q.Order))
		for _, o := range q.Order {
			qc, err := quote(o.Column)
			if err != nil {
				return "", nil, err
			}
			if o.Descending {
				qc += " DESC"
			} else {
				qc += " ASC"
			}
			terms = append(terms, qc)
		}
		sb.WriteString(" ORDER BY " + strings.Join(terms, ", "))
	}

	if q.Limit > 0 {
		sb.WriteString(" LIMIT " + strconv.Itoa(q.Limit))
	}

	return sb.String(), args, nil
}

func buildInsert(table string, record ports.Record) (string, []interface{}, error) {
	qt, err := quote(table)
	if err != nil {
		return "", nil, err
	}
	if len(record) == 0 {
		return "", nil, entities.ErrEmptyRecord
	}

	keys := sortedKeys(record)
	columns := make([]string, 0, len(keys))
	placeholders := make([]string, 0, len(keys))
	args := make([]interface{}, 0, len(keys))
	for _, k := range keys {
		qc, err := quote(k)
		if err != nil {
			return "", nil, err
		}
		columns = append(columns, qc)
		placeholders = append(placeholders, "?")
		args = append(args, record[k])
	}

	query := "INSERT INTO " + qt + " (" + strings.Join(columns, ", ") + ") VALUES (" +
		strings.Join(placeholders, ", ") + ") RETURNING *"
	return query, args, nil
}

func buildUpdate(table string, record ports.Record, filters []ports.Filter) (string, []interface{}, error) {
	qt, err := quote(table)
	if err != nil {
		return "", nil, err
	}
	if len(record) == 0 {
		return "", nil, entities.ErrEmptyRecord
	}
	if len(filters) == 0 {
		return "", nil, ErrUnfilteredWrite
	}

	keys := sortedKeys(record)
	sets := make([]string, 0, len(keys))
	args := make([]interface{}, 0, len(keys)+len(filters))
	for _, k := range keys {
		qc, err := quote(k)
		if err != nil {
			return "", nil, err
		}
		sets = append(sets, qc+" = ?")
		args = append(args, record[k])
	}

	where, whereArgs, err := buildWhere(filters)
	if err != nil {
		return "", nil, err
	}
	args = append(args, whereArgs...)

	return "UPDATE " + qt + " SET " + strings.Join(sets, ", ") + where + " RETURNING *", args, nil
}

func buildDelete(table string, filters []ports.Filter) (string, []interface{}, error) {
	qt, err := quote(table)
	if err != nil {
		return "", nil, err
	}
	if len(filters) == 0 {
		return "", nil, ErrUnfilteredWrite
	}

	where, args, err := buildWhere(filters)
	if err != nil {
		return "", nil, err
	}

	return "DELETE FROM " + qt + where, args, nil
}

func buildWhere(filters []ports.Filter) (string, []interface{}, error) {
	if len(filters) == 0 {
		return "", nil, nil
	}

	conds := make([]string, 0, len(filters))
	args := make([]interface{}, 0, len(filters))
	for _, f := range filters {
		qc, err := quote(f.Column)
		if err != nil {
			return "", nil, err
		}
		conds = append(conds, qc+" = ?")
		args = append(args, f.Value)
	}

	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

func sortedKeys(record ports.Record) []string {
	keys := make([]string, 0, len(record))
	for k := range record {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

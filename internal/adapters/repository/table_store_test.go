package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanbancal/core/internal/domain/entities"
	"github.com/kanbancal/core/internal/ports"
	"github.com/kanbancal/core/internal/testutil"
)

func newTestStore(t *testing.T) *SQLTableStore {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewTableStore(db.DB, testutil.Logger())
}

func TestBuildSelect(t *testing.T) {
	query, args, err := buildSelect(ports.Query{
		Table:   "kanban_cards",
		Columns: []string{"id", "title"},
		Filters: []ports.Filter{ports.Eq("project_id", int64(2))},
		Order:   []ports.Order{ports.Asc("position"), ports.Desc("created_at")},
		Limit:   5,
	})
	require.NoError(t, err)

	assert.Equal(t, `SELECT "id", "title" FROM "kanban_cards" WHERE "project_id" = ? ORDER BY "position" ASC, "created_at" DESC LIMIT 5`, query)
	assert.Equal(t, []interface{}{int64(2)}, args)
}

func TestBuildInsertSortsColumns(t *testing.T) {
	query, args, err := buildInsert("kanban_comments", ports.Record{"content": "hi", "author": "kim", "card_id": int64(1)})
	require.NoError(t, err)

	assert.Equal(t, `INSERT INTO "kanban_comments" ("author", "card_id", "content") VALUES (?, ?, ?) RETURNING *`, query)
	assert.Equal(t, []interface{}{"kim", int64(1), "hi"}, args)
}

func TestBuildUpdate(t *testing.T) {
	query, args, err := buildUpdate("kanban_cards", ports.Record{"column_name": "archive"}, []ports.Filter{ports.Eq("id", int64(9))})
	require.NoError(t, err)

	assert.Equal(t, `UPDATE "kanban_cards" SET "column_name" = ? WHERE "id" = ? RETURNING *`, query)
	assert.Equal(t, []interface{}{"archive", int64(9)}, args)
}

func TestBuildRejectsBadInput(t *testing.T) {
	_, _, err := buildSelect(ports.Query{Table: "cards; DROP TABLE x"})
	assert.ErrorIs(t, err, entities.ErrInvalidIdentifier)

	_, _, err = buildInsert("kanban_cards", ports.Record{})
	assert.ErrorIs(t, err, entities.ErrEmptyRecord)

	_, _, err = buildUpdate("kanban_cards", ports.Record{"title": "x"}, nil)
	assert.ErrorIs(t, err, ErrUnfilteredWrite)

	_, _, err = buildDelete("kanban_cards", nil)
	assert.ErrorIs(t, err, ErrUnfilteredWrite)

	_, _, err = buildSelect(ports.Query{Table: "kanban_cards", Order: []ports.Order{ports.Asc("Title")}})
	assert.ErrorIs(t, err, entities.ErrInvalidIdentifier)
}

func TestTableStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var inserted []entities.Card
	err := store.Insert(ctx, entities.TableCards, ports.Record{"title": "Write tests", "position": 3}, &inserted)
	require.NoError(t, err)
	require.Len(t, inserted, 1)
	card := inserted[0]
	assert.NotZero(t, card.ID)
	assert.Equal(t, "todo", card.ColumnName)
	assert.False(t, card.CreatedAt.IsZero())

	var selected []entities.Card
	err = store.Select(ctx, ports.Query{Table: entities.TableCards, Filters: []ports.Filter{ports.Eq("id", card.ID)}}, &selected)
	require.NoError(t, err)
	require.Len(t, selected, 1)
	assert.Equal(t, "Write tests", selected[0].Title)
	assert.Equal(t, 3, selected[0].Position)

	var updated []entities.Card
	err = store.Update(ctx, entities.TableCards, ports.Record{"column_name": "done"}, []ports.Filter{ports.Eq("id", card.ID)}, &updated)
	require.NoError(t, err)
	require.Len(t, updated, 1)
	assert.Equal(t, "done", updated[0].ColumnName)

	require.NoError(t, store.Delete(ctx, entities.TableCards, []ports.Filter{ports.Eq("id", card.ID)}))
	require.NoError(t, store.Delete(ctx, entities.TableCards, []ports.Filter{ports.Eq("id", card.ID)}))

	selected = nil
	err = store.Select(ctx, ports.Query{Table: entities.TableCards}, &selected)
	require.NoError(t, err)
	assert.Empty(t, selected)
}

func TestTableStoreObserver(t *testing.T) {
	type call struct {
		table, operation string
		failed           bool
	}
	var calls []call
	store := newTestStore(t).WithObserver(func(table, operation string, _ time.Duration, err error) {
		calls = append(calls, call{table, operation, err != nil})
	})

	var projects []entities.ProjectSummary
	require.NoError(t, store.Select(context.Background(), ports.Query{Table: entities.TableProjects, Columns: []string{"id", "name"}}, &projects))
	err := store.Select(context.Background(), ports.Query{Table: "missing_table"}, &projects)
	require.Error(t, err)

	assert.Equal(t, []call{
		{entities.TableProjects, "select", false},
		{"missing_table", "select", true},
	}, calls)
}

package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/existflow/taskmaster/internal/model"
	"github.com/existflow/taskmaster/internal/persist"
)

func openTemp(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "data", "tasks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDB_EmptyLoad(t *testing.T) {
	db := openTemp(t)
	assert.Equal(t, SQLite, db.Dialect())

	state, err := db.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, state.Tasks)
	assert.Empty(t, state.Categories)
}

func TestDB_SaveLoadPreservesOrderAndDanglingRefs(t *testing.T) {
	ctx := context.Background()
	db := openTemp(t)

	due := time.Date(2026, 7, 4, 17, 0, 0, 0, time.UTC)
	state := model.State{
		Categories: []model.Category{
			{ID: "zz", Name: "Work", Color: "#4A6FA5"},
			{ID: "aa", Name: "Home", Color: "teal"},
		},
		Tasks: []model.Task{
			{ID: "t9", Title: "Write report", Description: "Q3", Priority: model.PriorityHigh, CategoryID: "zz", DueDate: &due, CreatedAt: time.Date(2026, 7, 1, 8, 0, 0, 123, time.UTC)},
			{ID: "t1", Title: "Orphan", Priority: model.PriorityLow, CategoryID: "deleted", Completed: true, CreatedAt: time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)},
		},
	}
	require.NoError(t, db.Save(ctx, state))

	got, err := db.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, state, got)

	// a second save replaces rather than appends
	state.Tasks = state.Tasks[:1]
	require.NoError(t, db.Save(ctx, state))
	got, err = db.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Tasks, 1)
}

func TestDB_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tasks.db")

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Save(ctx, model.State{Categories: []model.Category{{ID: "c1", Name: "Work", Color: "#4A6FA5"}}}))
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()
	got, err := db.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Categories, 1)
}

func TestDB_ClosedReportsPersistenceError(t *testing.T) {
	db := openTemp(t)
	require.NoError(t, db.Close())

	err := db.Save(context.Background(), model.State{})
	assert.ErrorIs(t, err, persist.ErrPersistence)
}

func TestRebind(t *testing.T) {
	pg := &DB{dialect: Postgres}
	assert.Equal(t, "INSERT INTO t VALUES ($1, $2)", pg.rebind("INSERT INTO t VALUES (?, ?)"))

	lite := &DB{dialect: SQLite}
	assert.Equal(t, "SELECT ?", lite.rebind("SELECT ?"))
}

func TestOpenDialect_Unsupported(t *testing.T) {
	_, err := OpenDialect(context.Background(), "oracle", "")
	assert.Error(t, err)
}

// compile-time check
var _ persist.Persister = (*DB)(nil)

package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/slatehq/slate/internal/scheduling/domain"
)

func setupEventRepo(t *testing.T) *SQLiteEventRepository {
	t.Helper()

	dbConn, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbConn.Close() })

	repo := NewSQLiteEventRepository(dbConn)
	require.NoError(t, repo.Migrate(context.Background()))
	return repo
}

func testEvent(id string) domain.Event {
	start := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.January, 17, 0, 0, 0, 0, time.UTC)
	return domain.Event{
		ID:       id,
		Title:    "Studio shoot",
		Start:    start,
		End:      end,
		Priority: domain.PriorityMedium,
		Project:  domain.Project{ID: "proj-1", Name: "Brand Film", Status: "active"},
		Phase:    domain.Phase{ID: "phase-1", Type: domain.PhaseFilming, Start: start, End: end, Movable: true},
	}
}

func TestSQLiteEventRepository_SaveAndFindByID(t *testing.T) {
	repo := setupEventRepo(t)
	ctx := context.Background()

	event := testEvent("ev-1")
	require.NoError(t, repo.Save(ctx, event))

	found, err := repo.FindByID(ctx, "ev-1")
	require.NoError(t, err)
	assert.Equal(t, event, found)
}

func TestSQLiteEventRepository_SaveUpdatesExisting(t *testing.T) {
	repo := setupEventRepo(t)
	ctx := context.Background()

	event := testEvent("ev-1")
	require.NoError(t, repo.Save(ctx, event))

	moved := event.MovedTo(
		time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.February, 5, 0, 0, 0, 0, time.UTC),
	)
	moved.Priority = domain.PriorityHigh
	require.NoError(t, repo.Save(ctx, moved))

	found, err := repo.FindByID(ctx, "ev-1")
	require.NoError(t, err)
	assert.Equal(t, moved.Start, found.Start)
	assert.Equal(t, domain.PriorityHigh, found.Priority)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1, "save must upsert, not duplicate")
}

func TestSQLiteEventRepository_FindByID_NotFound(t *testing.T) {
	repo := setupEventRepo(t)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestSQLiteEventRepository_FindAll_OrderedByStart(t *testing.T) {
	repo := setupEventRepo(t)
	ctx := context.Background()

	later := testEvent("ev-2")
	later.Start = time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	later.End = time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Save(ctx, later))
	require.NoError(t, repo.Save(ctx, testEvent("ev-1")))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "ev-1", all[0].ID)
	assert.Equal(t, "ev-2", all[1].ID)
}

func TestSQLiteEventRepository_FindByProject(t *testing.T) {
	repo := setupEventRepo(t)
	ctx := context.Background()

	first := testEvent("ev-1")
	second := testEvent("ev-2")
	second.Project = domain.Project{ID: "proj-2", Name: "Other", Status: "active"}

	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	events, err := repo.FindByProject(ctx, "proj-1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "ev-1", events[0].ID)
}

func TestSQLiteEventRepository_Delete(t *testing.T) {
	repo := setupEventRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testEvent("ev-1")))
	require.NoError(t, repo.Delete(ctx, "ev-1"))

	_, err := repo.FindByID(ctx, "ev-1")
	assert.ErrorIs(t, err, domain.ErrEventNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, "ev-1"), domain.ErrEventNotFound)
}

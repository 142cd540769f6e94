package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bugsight/internal/domain"
	"bugsight/internal/repository"
)

func initSchema(t *testing.T, db *sql.DB) (repository.BugRepository, repository.SightingRepository) {
	t.Helper()
	ctx := context.Background()

	users := NewUserRepository(db)
	require.NoError(t, users.Init(ctx))
	require.NoError(t, users.Create(ctx, &domain.User{
		ID: "u1", Username: "romain", Email: "romain@x.com", HashedPassword: "D",
	}))

	bugs := NewBugRepository(db)
	require.NoError(t, bugs.Init(ctx))

	sightings := NewSightingRepository(db)
	require.NoError(t, sightings.Init(ctx))

	return bugs, sightings
}

func TestBugRepositoryCRUD(t *testing.T) {
	db := openTestDB(t)
	bugs, _ := initSchema(t, db)
	ctx := context.Background()

	bug := &domain.Bug{ID: "b1", Species: "Lucanus cervus", DangerLevel: 2, Description: "stag beetle"}
	require.NoError(t, bugs.Create(ctx, bug))

	found, err := bugs.Get(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, "Lucanus cervus", found.Species)

	bug.DangerLevel = 3
	require.NoError(t, bugs.Update(ctx, bug))

	found, err = bugs.Get(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, 3, found.DangerLevel)

	all, err := bugs.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, bugs.Delete(ctx, "b1"))
	_, err = bugs.Get(ctx, "b1")
	assert.Error(t, err)
}

func TestBugRepositoryUpdateMissing(t *testing.T) {
	db := openTestDB(t)
	bugs, _ := initSchema(t, db)

	err := bugs.Update(context.Background(), &domain.Bug{ID: "missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSightingRepositoryCRUD(t *testing.T) {
	db := openTestDB(t)
	bugs, sightings := initSchema(t, db)
	ctx := context.Background()

	require.NoError(t, bugs.Create(ctx, &domain.Bug{ID: "b1", Species: "Apis mellifera"}))

	seenAt := time.Date(2026, 7, 15, 14, 0, 0, 0, time.UTC)
	sighting := &domain.Sighting{
		ID:        "s1",
		BugID:     "b1",
		UserID:    "u1",
		Latitude:  48.8566,
		Longitude: 2.3522,
		SeenAt:    seenAt,
		Notes:     "hive nearby",
	}
	require.NoError(t, sightings.Create(ctx, sighting))
	assert.False(t, sighting.CreatedAt.IsZero())

	found, err := sightings.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "b1", found.BugID)
	assert.Equal(t, "u1", found.UserID)
	assert.Equal(t, seenAt, found.SeenAt.UTC())

	found.Notes = "swarm"
	require.NoError(t, sightings.Update(ctx, found))

	found, err = sightings.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "swarm", found.Notes)

	all, err := sightings.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, sightings.Delete(ctx, "s1"))
	_, err = sightings.Get(ctx, "s1")
	assert.Error(t, err)
}

func TestSightingRepositoryEnforcesForeignKeys(t *testing.T) {
	db := openTestDB(t)
	_, sightings := initSchema(t, db)

	err := sightings.Create(context.Background(), &domain.Sighting{
		ID:     "s1",
		BugID:  "no-such-bug",
		UserID: "u1",
		SeenAt: time.Now().UTC(),
	})
	assert.Error(t, err)
}

package animals

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/farmily/farmily/internal/client/models"
	"github.com/farmily/farmily/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE animals (
  id            TEXT PRIMARY KEY,
  name          TEXT NOT NULL,
  type          TEXT NOT NULL,
  breed         TEXT NOT NULL DEFAULT '',
  birth_date    INTEGER,
  weight        REAL NOT NULL DEFAULT 0,
  health_status TEXT NOT NULL DEFAULT 'good',
  notes         TEXT NOT NULL DEFAULT '',
  created_at    INTEGER NOT NULL,
  updated_at    INTEGER NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func sampleAnimal(id string, created time.Time) *models.Animal {
	birth := time.Date(2021, 4, 2, 0, 0, 0, 0, time.UTC)
	return &models.Animal{
		ID:           id,
		Name:         "Bessie",
		Type:         models.AnimalCow,
		Breed:        "Holstein",
		BirthDate:    &birth,
		Weight:       540.5,
		HealthStatus: models.HealthExcellent,
		Notes:        "calm",
		CreatedAt:    created,
		UpdatedAt:    created,
	}
}

func TestCreateOrUpdate_InsertThenGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	a := sampleAnimal("a1", now)
	require.NoError(t, r.CreateOrUpdate(ctx, a))

	got, err := r.GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, a, got)
}

func TestCreateOrUpdate_UpdateKeepsCreatedAt(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	created := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, r.CreateOrUpdate(ctx, sampleAnimal("a1", created)))

	changed := sampleAnimal("a1", created.Add(time.Hour))
	changed.Name = "Daisy"
	changed.BirthDate = nil
	changed.HealthStatus = models.HealthFair
	require.NoError(t, r.CreateOrUpdate(ctx, changed))

	got, err := r.GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "Daisy", got.Name)
	assert.Nil(t, got.BirthDate)
	assert.Equal(t, models.HealthFair, got.HealthStatus)
	assert.Equal(t, created, got.CreatedAt)
	assert.Equal(t, created.Add(time.Hour), got.UpdatedAt)
}

func TestGetAll_NewestFirst(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, r.CreateOrUpdate(ctx, sampleAnimal("old", base)))
	require.NoError(t, r.CreateOrUpdate(ctx, sampleAnimal("new", base.Add(48*time.Hour))))
	require.NoError(t, r.CreateOrUpdate(ctx, sampleAnimal("mid", base.Add(24*time.Hour))))

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"new", "mid", "old"}, []string{all[0].ID, all[1].ID, all[2].ID})
}

func TestGetAll_Empty(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	all, err := r.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestGetByID_NotFound(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	_, err := r.GetByID(context.Background(), "ghost")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestDeleteByID(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.CreateOrUpdate(ctx, sampleAnimal("a1", time.Now().UTC())))
	require.NoError(t, r.DeleteByID(ctx, "a1"))

	_, err := r.GetByID(ctx, "a1")
	require.ErrorIs(t, err, common.ErrNotFound)

	require.ErrorIs(t, r.DeleteByID(ctx, "a1"), common.ErrNotFound)
}

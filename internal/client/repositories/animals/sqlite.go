package animals

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/farmily/farmily/internal/client/models"
	"github.com/farmily/farmily/internal/common"
	"github.com/farmily/farmily/internal/dbx"
)

const selectColumns = `id, name, type, breed, birth_date, weight, health_status, notes, created_at, updated_at`

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) CreateOrUpdate(ctx context.Context, a *models.Animal) error {
	query := `
		INSERT INTO animals (id, name, type, breed, birth_date, weight, health_status, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			type = excluded.type,
			breed = excluded.breed,
			birth_date = excluded.birth_date,
			weight = excluded.weight,
			health_status = excluded.health_status,
			notes = excluded.notes,
			updated_at = excluded.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.Name, string(a.Type), a.Breed, toNullNanos(a.BirthDate), a.Weight,
		string(a.HealthStatus), a.Notes, a.CreatedAt.UnixNano(), a.UpdatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to save animal %s: %w", a.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Animal, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM animals ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select animals: %w", err)
	}
	defer rows.Close()

	var result []models.Animal
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan animal: %w", err)
		}
		result = append(result, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate animals: %w", err)
	}

	return result, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Animal, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM animals WHERE id = ?`, id)

	a, err := scanAnimal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get animal %s: %w", id, err)
	}
	return a, nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM animals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete animal %s: %w", id, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAnimal(s scanner) (*models.Animal, error) {
	var (
		a                    models.Animal
		typ, health          string
		birth                sql.NullInt64
		createdAt, updatedAt int64
	)
	err := s.Scan(&a.ID, &a.Name, &typ, &a.Breed, &birth, &a.Weight, &health, &a.Notes, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	a.Type = models.AnimalType(typ)
	a.HealthStatus = models.HealthStatus(health)
	if birth.Valid {
		t := time.Unix(0, birth.Int64).UTC()
		a.BirthDate = &t
	}
	a.CreatedAt = time.Unix(0, createdAt).UTC()
	a.UpdatedAt = time.Unix(0, updatedAt).UTC()
	return &a, nil
}

func toNullNanos(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UnixNano(), Valid: true}
}

package animals

import (
	"context"

	"github.com/farmily/farmily/internal/client/models"
)

// Repository describes CRUD operations for Animal records.
type Repository interface {
	// CreateOrUpdate inserts a new animal or replaces an existing one by ID.
	CreateOrUpdate(ctx context.Context, animal *models.Animal) error

	// GetAll returns every animal, newest first.
	GetAll(ctx context.Context) ([]models.Animal, error)

	// GetByID returns common.ErrNotFound for unknown ids.
	GetByID(ctx context.Context, id string) (*models.Animal, error)

	// DeleteByID returns common.ErrNotFound for unknown ids.
	DeleteByID(ctx context.Context, id string) error
}

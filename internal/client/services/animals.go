package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/farmily/farmily/internal/client/models"
	"github.com/farmily/farmily/internal/client/repositories/animals"
	"github.com/farmily/farmily/internal/common"
	"github.com/google/uuid"
)

// AnimalService manages herd records.
type AnimalService interface {
	Add(ctx context.Context, a models.Animal) (*models.Animal, error)
	Update(ctx context.Context, a models.Animal) (*models.Animal, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*models.Animal, error)
	// List returns the herd newest first.
	List(ctx context.Context) ([]models.Animal, error)
	Statistics(ctx context.Context) (models.Statistics, error)
}

type animalService struct {
	repo animals.Repository
	now  func() time.Time
}

func NewAnimalService(repo animals.Repository) AnimalService {
	return &animalService{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func normalize(a *models.Animal) error {
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return fmt.Errorf("%w: name is required", common.ErrValidation)
	}
	if a.Weight < 0 || math.IsNaN(a.Weight) || math.IsInf(a.Weight, 0) {
		return fmt.Errorf("%w: weight must be a non-negative number", common.ErrValidation)
	}
	a.Type = models.ParseAnimalType(string(a.Type))
	a.HealthStatus = models.ParseHealthStatus(string(a.HealthStatus))
	a.Breed = strings.TrimSpace(a.Breed)
	a.Notes = strings.TrimSpace(a.Notes)
	return nil
}

func (s *animalService) Add(ctx context.Context, a models.Animal) (*models.Animal, error) {
	if err := normalize(&a); err != nil {
		return nil, err
	}

	now := s.now()
	a.ID = uuid.NewString()
	a.CreatedAt = now
	a.UpdatedAt = now

	if err := s.repo.CreateOrUpdate(ctx, &a); err != nil {
		return nil, fmt.Errorf("saving error: %w", err)
	}
	return &a, nil
}

func (s *animalService) Update(ctx context.Context, a models.Animal) (*models.Animal, error) {
	if err := normalize(&a); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, a.ID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving animal: %w", err)
	}

	a.CreatedAt = existing.CreatedAt
	a.UpdatedAt = s.now()

	if err := s.repo.CreateOrUpdate(ctx, &a); err != nil {
		return nil, fmt.Errorf("saving error: %w", err)
	}
	return &a, nil
}

func (s *animalService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("error deleting animal: %w", err)
	}
	return nil
}

func (s *animalService) Get(ctx context.Context, id string) (*models.Animal, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving animal: %w", err)
	}
	return a, nil
}

func (s *animalService) List(ctx context.Context) ([]models.Animal, error) {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing animals: %w", err)
	}
	return all, nil
}

func (s *animalService) Statistics(ctx context.Context) (models.Statistics, error) {
	all, err := s.List(ctx)
	if err != nil {
		return models.Statistics{}, err
	}
	return models.Summarize(all), nil
}

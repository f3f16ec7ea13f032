// Package services contains application services for the Farmily client.
// This file defines the typed settings service over the key/value store.
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/farmily/farmily/internal/client/models"
	"github.com/farmily/farmily/internal/client/repositories/settings"
	"github.com/farmily/farmily/internal/common"
)

// Defaults applied when a key was never written.
const (
	DefaultLanguage = "en"
	DefaultTheme    = models.ThemeSystem
)

// SettingsService exposes the persisted settings with their types and
// defaults. Every write is independent and durable when the call returns.
type SettingsService interface {
	// Token reports the cached gate token; ok is false if none was stored.
	Token(ctx context.Context) (token string, ok bool, err error)
	// Link reports the cached content URL; ok is false if none was stored.
	Link(ctx context.Context) (link string, ok bool, err error)
	// SaveCredential stores token and link of a successful gate fetch.
	SaveCredential(ctx context.Context, cred models.GateCredential) error

	HasSeenLanguageSelection(ctx context.Context) (bool, error)
	MarkLanguageSelectionSeen(ctx context.Context) error

	Language(ctx context.Context) (string, error)
	SetLanguage(ctx context.Context, tag string) error

	Theme(ctx context.Context) (models.Theme, error)
	SetTheme(ctx context.Context, theme models.Theme) error

	// Stored returns every persisted key and its raw value.
	Stored(ctx context.Context) (map[string]string, error)
	// ResetPreferences forgets language and theme so the defaults apply
	// again. Gate state and the attribution id are kept.
	ResetPreferences(ctx context.Context) error
}

type settingsService struct {
	repo settings.Repository
}

func NewSettingsService(repo settings.Repository) SettingsService {
	return &settingsService{repo: repo}
}

func (s *settingsService) lookup(ctx context.Context, key string) (string, bool, error) {
	v, err := s.repo.Get(ctx, key)
	if errors.Is(err, common.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *settingsService) Token(ctx context.Context) (string, bool, error) {
	return s.lookup(ctx, models.KeyToken)
}

func (s *settingsService) Link(ctx context.Context) (string, bool, error) {
	return s.lookup(ctx, models.KeyLink)
}

func (s *settingsService) SaveCredential(ctx context.Context, cred models.GateCredential) error {
	if err := s.repo.Set(ctx, models.KeyToken, cred.Token); err != nil {
		return fmt.Errorf("error saving token: %w", err)
	}
	if err := s.repo.Set(ctx, models.KeyLink, cred.ContentURL); err != nil {
		return fmt.Errorf("error saving link: %w", err)
	}
	return nil
}

func (s *settingsService) HasSeenLanguageSelection(ctx context.Context) (bool, error) {
	v, ok, err := s.lookup(ctx, models.KeyHasSeenLanguageSelection)
	if err != nil || !ok {
		return false, err
	}
	seen, err := strconv.ParseBool(v)
	if err != nil {
		return false, nil
	}
	return seen, nil
}

func (s *settingsService) MarkLanguageSelectionSeen(ctx context.Context) error {
	if err := s.repo.Set(ctx, models.KeyHasSeenLanguageSelection, strconv.FormatBool(true)); err != nil {
		return fmt.Errorf("error saving language selection flag: %w", err)
	}
	return nil
}

func (s *settingsService) Language(ctx context.Context) (string, error) {
	v, ok, err := s.lookup(ctx, models.KeyLanguage)
	if err != nil {
		return DefaultLanguage, err
	}
	if !ok || v == "" {
		return DefaultLanguage, nil
	}
	return v, nil
}

func (s *settingsService) SetLanguage(ctx context.Context, tag string) error {
	if err := s.repo.Set(ctx, models.KeyLanguage, tag); err != nil {
		return fmt.Errorf("error saving language: %w", err)
	}
	return nil
}

func (s *settingsService) Theme(ctx context.Context) (models.Theme, error) {
	v, ok, err := s.lookup(ctx, models.KeyTheme)
	if err != nil {
		return DefaultTheme, err
	}
	if !ok {
		return DefaultTheme, nil
	}
	return models.ParseTheme(v), nil
}

func (s *settingsService) SetTheme(ctx context.Context, theme models.Theme) error {
	if err := s.repo.Set(ctx, models.KeyTheme, string(theme)); err != nil {
		return fmt.Errorf("error saving theme: %w", err)
	}
	return nil
}

func (s *settingsService) Stored(ctx context.Context) (map[string]string, error) {
	m, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing settings: %w", err)
	}
	return m, nil
}

func (s *settingsService) ResetPreferences(ctx context.Context) error {
	for _, key := range []string{models.KeyLanguage, models.KeyTheme} {
		if err := s.repo.Delete(ctx, key); err != nil {
			return fmt.Errorf("error resetting %s: %w", key, err)
		}
	}
	return nil
}

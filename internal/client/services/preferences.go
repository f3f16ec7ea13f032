package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/farmily/farmily/internal/client/language"
	"github.com/farmily/farmily/internal/client/models"
	"github.com/farmily/farmily/internal/common"
)

// LanguageManager holds the current UI language. An unsupported stored value
// is treated as the default.
type LanguageManager struct {
	settings SettingsService

	mu      sync.RWMutex
	current string
}

func NewLanguageManager(ctx context.Context, s SettingsService) (*LanguageManager, error) {
	tag, err := s.Language(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading language: %w", err)
	}
	if !language.IsSupported(tag) {
		tag = language.Default
	}
	return &LanguageManager{settings: s, current: tag}, nil
}

func (m *LanguageManager) Current() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// SetLanguage persists tag and makes it current.
func (m *LanguageManager) SetLanguage(ctx context.Context, tag string) error {
	if !language.IsSupported(tag) {
		return fmt.Errorf("%w: unsupported language %q", common.ErrValidation, tag)
	}
	if err := m.settings.SetLanguage(ctx, tag); err != nil {
		return err
	}

	m.mu.Lock()
	m.current = tag
	m.mu.Unlock()
	return nil
}

// Reload re-reads the stored language, falling back to the default.
func (m *LanguageManager) Reload(ctx context.Context) error {
	tag, err := m.settings.Language(ctx)
	if err != nil {
		return fmt.Errorf("error loading language: %w", err)
	}
	if !language.IsSupported(tag) {
		tag = language.Default
	}

	m.mu.Lock()
	m.current = tag
	m.mu.Unlock()
	return nil
}

// ThemeManager holds the current colour scheme preference.
type ThemeManager struct {
	settings SettingsService

	mu      sync.RWMutex
	current models.Theme
}

func NewThemeManager(ctx context.Context, s SettingsService) (*ThemeManager, error) {
	theme, err := s.Theme(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading theme: %w", err)
	}
	return &ThemeManager{settings: s, current: theme}, nil
}

func (m *ThemeManager) Current() models.Theme {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

func (m *ThemeManager) SetTheme(ctx context.Context, theme models.Theme) error {
	switch theme {
	case models.ThemeSystem, models.ThemeLight, models.ThemeDark:
	default:
		return fmt.Errorf("%w: unknown theme %q", common.ErrValidation, theme)
	}
	if err := m.settings.SetTheme(ctx, theme); err != nil {
		return err
	}

	m.mu.Lock()
	m.current = theme
	m.mu.Unlock()
	return nil
}

func (m *ThemeManager) Reload(ctx context.Context) error {
	theme, err := m.settings.Theme(ctx)
	if err != nil {
		return fmt.Errorf("error loading theme: %w", err)
	}

	m.mu.Lock()
	m.current = theme
	m.mu.Unlock()
	return nil
}

package service

import (
	"context"
	"fmt"
	"sync"

	"yieldhop/internal/app/port"
	"yieldhop/internal/domain/entity"
)

// Theme storage key and values.
const (
	ThemeKey   = "yieldhop-theme"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// ThemeService holds the dark/light preference. It is read from the store once at startup and
// written back on every change.
type ThemeService struct {
	store  port.PreferenceStore
	logger port.Logger
	mu     sync.RWMutex
	dark   bool
}

// NewThemeService loads the persisted preference; a missing or unrecognised value means light.
func NewThemeService(ctx context.Context, store port.PreferenceStore, l port.Logger) (*ThemeService, error) {
	value, ok, err := store.Get(ctx, ThemeKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load theme preference: %w", err)
	}
	s := &ThemeService{store: store, logger: l}
	switch {
	case !ok:
		l.Debug("No theme preference stored, using light")
	case value == ThemeDark:
		s.dark = true
	case value != ThemeLight:
		l.Warn("Ignoring unrecognised theme preference", "value", value)
	}
	return s, nil
}

// Theme returns the current preference.
func (s *ThemeService) Theme() entity.ThemePreference {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return entity.ThemePreference{Dark: s.dark}
}

// Set stores the preference. The in-memory value only changes once the write succeeded.
func (s *ThemeService) Set(ctx context.Context, dark bool) (entity.ThemePreference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setLocked(ctx, dark)
}

// Toggle flips the preference and stores it.
func (s *ThemeService) Toggle(ctx context.Context) (entity.ThemePreference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setLocked(ctx, !s.dark)
}

func (s *ThemeService) setLocked(ctx context.Context, dark bool) (entity.ThemePreference, error) {
	value := ThemeLight
	if dark {
		value = ThemeDark
	}
	if err := s.store.Put(ctx, ThemeKey, value); err != nil {
		return entity.ThemePreference{Dark: s.dark}, err
	}
	s.dark = dark
	s.logger.Info("Theme preference saved", "theme", value)
	return entity.ThemePreference{Dark: dark}, nil
}

package port

import (
	"context"

	"yieldhop/internal/domain/entity"
)

// PreferenceStore persists client preferences. Values are opaque strings under fixed keys.
type PreferenceStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
}

// ThemeService exposes the dark/light preference to the API.
type ThemeService interface {
	Theme() entity.ThemePreference
	Set(ctx context.Context, dark bool) (entity.ThemePreference, error)
	Toggle(ctx context.Context) (entity.ThemePreference, error)
}

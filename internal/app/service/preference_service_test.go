package service

import (
	"context"
	"errors"
	"testing"

	"yieldhop/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	value   string
	getErr  error
	putErr  error
	written []string
}

func (s *failingStore) Get(context.Context, string) (string, bool, error) {
	return s.value, s.value != "", s.getErr
}

func (s *failingStore) Put(_ context.Context, _, value string) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.written = append(s.written, value)
	return nil
}

type memoryStore struct {
	values map[string]string
}

func (s *memoryStore) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *memoryStore) Put(_ context.Context, key, value string) error {
	s.values[key] = value
	return nil
}

func TestThemeService_PersistsAcrossRestart(t *testing.T) {
	store := &memoryStore{values: map[string]string{}}
	ctx := context.Background()

	svc, err := NewThemeService(ctx, store, logger.NewNop())
	require.NoError(t, err)
	assert.False(t, svc.Theme().Dark)

	pref, err := svc.Toggle(ctx)
	require.NoError(t, err)
	assert.True(t, pref.Dark)

	v, ok, err := store.Get(ctx, ThemeKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ThemeDark, v)

	restarted, err := NewThemeService(ctx, store, logger.NewNop())
	require.NoError(t, err)
	assert.True(t, restarted.Theme().Dark)

	pref, err = restarted.Set(ctx, false)
	require.NoError(t, err)
	assert.False(t, pref.Dark)
	v, _, _ = store.Get(ctx, ThemeKey)
	assert.Equal(t, ThemeLight, v)
}

func TestThemeService_UnrecognisedValueIsLight(t *testing.T) {
	svc, err := NewThemeService(context.Background(), &failingStore{value: "solarized"}, logger.NewNop())
	require.NoError(t, err)
	assert.False(t, svc.Theme().Dark)
}

func TestThemeService_StoreErrors(t *testing.T) {
	_, err := NewThemeService(context.Background(), &failingStore{getErr: errors.New("corrupt")}, logger.NewNop())
	assert.ErrorContains(t, err, "corrupt")

	store := &failingStore{value: ThemeDark}
	svc, err := NewThemeService(context.Background(), store, logger.NewNop())
	require.NoError(t, err)

	store.putErr = errors.New("disk full")
	pref, err := svc.Toggle(context.Background())
	assert.Error(t, err)
	assert.True(t, pref.Dark)
	assert.True(t, svc.Theme().Dark)
}

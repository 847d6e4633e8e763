package usecase

import (
	"context"
	"listing-portal/internal/contextkeys"
	"listing-portal/internal/core/domain"
	"listing-portal/internal/core/port"
)

// ThemeUseCase читает и переключает тему через явно переданное хранилище настроек.
type ThemeUseCase struct{}

func NewThemeUseCase() *ThemeUseCase {
	return &ThemeUseCase{}
}

func (uc *ThemeUseCase) Current(ctx context.Context, store port.PreferenceStore) domain.Theme {
	value, ok := store.Get(domain.DarkModeKey)
	return domain.ThemeFromStored(value, ok)
}

func (uc *ThemeUseCase) Toggle(ctx context.Context, store port.PreferenceStore) domain.Theme {
	theme := uc.Current(ctx, store).Toggle()
	store.Set(domain.DarkModeKey, theme.StoredValue())

	contextkeys.LoggerFromContext(ctx).Debug("Theme toggled", port.Fields{"dark": theme.Dark})
	return theme
}

package usecases_port

import (
	"context"
	"listing-portal/internal/core/domain"
	"listing-portal/internal/core/port"
)

type ThemeUseCasePort interface {
	Current(ctx context.Context, store port.PreferenceStore) domain.Theme
	Toggle(ctx context.Context, store port.PreferenceStore) domain.Theme
}

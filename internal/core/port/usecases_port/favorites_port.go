package usecases_port

import "context"

type AddToFavoritesUseCasePort interface {
	Execute(ctx context.Context, userID, houseID int64) error
}

type RemoveFromFavoritesUseCasePort interface {
	Execute(ctx context.Context, userID, houseID int64) error
}

type GetUserFavoritesIdsUseCasePort interface {
	Execute(ctx context.Context, userID int64) ([]int64, error)
	Contains(ctx context.Context, userID, houseID int64) (bool, error)
}

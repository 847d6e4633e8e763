package postgres_adapter

import (
	"context"
	"errors"
	"fmt"

	"listing-portal/internal/contextkeys"
	"listing-portal/internal/core/domain"
	"listing-portal/internal/core/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresFavoritesRepository - реализация FavoritesRepositoryPort для PostgreSQL.
type PostgresFavoritesRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresFavoritesRepository(pool *pgxpool.Pool) (*PostgresFavoritesRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresFavoritesRepository{pool: pool}, nil
}

// Add добавляет запись в user_favorites. Повторное добавление - domain.ErrAlreadyFavorite.
func (r *PostgresFavoritesRepository) Add(ctx context.Context, userID, houseID int64) error {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresFavoritesRepository",
		"method":    "Add",
		"user_id":   userID,
		"house_id":  houseID,
	})

	query := `INSERT INTO user_favorites (user_id, house_id) VALUES ($1, $2)`

	_, err := r.pool.Exec(ctx, query, userID, houseID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // 23505 - unique_violation
			repoLogger.Warn("Favorite already exists.", nil)
			return domain.ErrAlreadyFavorite
		}
		repoLogger.Error("Failed to add favorite", err, port.Fields{"query": query})
		return fmt.Errorf("failed to add favorite: %w", err)
	}

	repoLogger.Debug("Successfully added to favorites.", nil)
	return nil
}

// Remove сообщает, была ли запись удалена.
func (r *PostgresFavoritesRepository) Remove(ctx context.Context, userID, houseID int64) (bool, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresFavoritesRepository",
		"method":    "Remove",
		"user_id":   userID,
		"house_id":  houseID,
	})

	query := `DELETE FROM user_favorites WHERE user_id = $1 AND house_id = $2`

	cmdTag, err := r.pool.Exec(ctx, query, userID, houseID)
	if err != nil {
		repoLogger.Error("Failed to remove favorite", err, port.Fields{"query": query})
		return false, fmt.Errorf("failed to remove favorite: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		repoLogger.Warn("Attempted to remove a favorite that did not exist.", nil)
		return false, nil
	}
	repoLogger.Debug("Successfully removed from favorites.", nil)
	return true, nil
}

// FindFavoriteIDsByUser - новые отметки первыми.
func (r *PostgresFavoritesRepository) FindFavoriteIDsByUser(ctx context.Context, userID int64) ([]int64, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresFavoritesRepository",
		"method":    "FindFavoriteIDsByUser",
		"user_id":   userID,
	})

	query := `SELECT house_id FROM user_favorites WHERE user_id = $1 ORDER BY created_at DESC, house_id DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		repoLogger.Error("Failed to query favorite IDs", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to query favorite IDs: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		repoLogger.Error("Failed to scan favorite IDs", err, nil)
		return nil, fmt.Errorf("failed to scan favorite IDs: %w", err)
	}
	return ids, nil
}

func (r *PostgresFavoritesRepository) RemoveAllForHouse(ctx context.Context, houseID int64) error {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresFavoritesRepository",
		"method":    "RemoveAllForHouse",
		"house_id":  houseID,
	})

	query := `DELETE FROM user_favorites WHERE house_id = $1`
	cmdTag, err := r.pool.Exec(ctx, query, houseID)
	if err != nil {
		repoLogger.Error("Failed to remove favorites of listing", err, port.Fields{"query": query})
		return fmt.Errorf("failed to remove favorites of listing %d: %w", houseID, err)
	}

	repoLogger.Debug("Favorites of listing removed.", port.Fields{"removed": cmdTag.RowsAffected()})
	return nil
}

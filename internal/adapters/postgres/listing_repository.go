package postgres_adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"listing-portal/internal/contextkeys"
	"listing-portal/internal/core/domain"
	"listing-portal/internal/core/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const houseColumns = `id, title, price, location, description, image, owner_phone, owner_email,
       bedrooms, bathrooms, area_sqm, property_type, user_id, created_at`

// PostgresListingRepository - реализация ListingRepositoryPort для PostgreSQL.
type PostgresListingRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresListingRepository(pool *pgxpool.Pool) (*PostgresListingRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresListingRepository{pool: pool}, nil
}

func scanHouse(row pgx.Row) (domain.House, error) {
	var h domain.House
	err := row.Scan(
		&h.ID,
		&h.Title,
		&h.Price,
		&h.Location,
		&h.Description,
		&h.Image,
		&h.OwnerPhone,
		&h.OwnerEmail,
		&h.Bedrooms,
		&h.Bathrooms,
		&h.AreaSqm,
		&h.PropertyType,
		&h.OwnerID,
		&h.CreatedAt,
	)
	return h, err
}

// FindByLocation ищет по подстроке адреса без учета регистра.
func (r *PostgresListingRepository) FindByLocation(ctx context.Context, city string) ([]domain.House, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresListingRepository",
		"method":    "FindByLocation",
		"city":      city,
	})

	query := `SELECT ` + houseColumns + ` FROM houses
WHERE $1 = '' OR location ILIKE '%' || $1 || '%'
ORDER BY created_at DESC, id DESC`

	repoLogger.Debug("Executing listing search query.", nil)
	rows, err := r.pool.Query(ctx, query, city)
	if err != nil {
		repoLogger.Error("Failed to search listings", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to search listings: %w", err)
	}
	defer rows.Close()

	houses, err := collectHouses(rows, repoLogger)
	if err != nil {
		return nil, err
	}

	repoLogger.Debug("Listing search finished.", port.Fields{"found": len(houses)})
	return houses, nil
}

// FindByOwner возвращает объявления пользователя, новые первыми.
func (r *PostgresListingRepository) FindByOwner(ctx context.Context, ownerID int64) ([]domain.House, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresListingRepository",
		"method":    "FindByOwner",
		"user_id":   ownerID,
	})

	query := `SELECT ` + houseColumns + ` FROM houses WHERE user_id = $1 ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		repoLogger.Error("Failed to query owner listings", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to query owner listings: %w", err)
	}
	defer rows.Close()

	return collectHouses(rows, repoLogger)
}

func collectHouses(rows pgx.Rows, repoLogger port.LoggerPort) ([]domain.House, error) {
	houses := make([]domain.House, 0)
	for rows.Next() {
		h, err := scanHouse(rows)
		if err != nil {
			repoLogger.Error("Failed to scan listing row", err, nil)
			return nil, fmt.Errorf("failed to scan listing row: %w", err)
		}
		houses = append(houses, h)
	}
	if err := rows.Err(); err != nil {
		repoLogger.Error("Error during listing rows iteration", err, nil)
		return nil, fmt.Errorf("error during listing rows iteration: %w", err)
	}
	return houses, nil
}

// GetByID возвращает объявление вместе с фотографиями интерьера.
// Если объявления нет, возвращается domain.ErrListingNotFound.
func (r *PostgresListingRepository) GetByID(ctx context.Context, id int64) (*domain.House, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresListingRepository",
		"method":    "GetByID",
		"house_id":  id,
	})

	query := `SELECT ` + houseColumns + ` FROM houses WHERE id = $1`

	house, err := scanHouse(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Warn("Listing not found.", nil)
			return nil, domain.ErrListingNotFound
		}
		repoLogger.Error("Failed to get listing", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to get listing %d: %w", id, err)
	}

	imagesQuery := `SELECT filename FROM house_images WHERE house_id = $1 ORDER BY position, id`
	rows, err := r.pool.Query(ctx, imagesQuery, id)
	if err != nil {
		repoLogger.Error("Failed to load listing images", err, port.Fields{"query": imagesQuery})
		return nil, fmt.Errorf("failed to load images for listing %d: %w", id, err)
	}
	images, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		repoLogger.Error("Failed to scan listing images", err, nil)
		return nil, fmt.Errorf("failed to scan images for listing %d: %w", id, err)
	}
	house.Images = images

	return &house, nil
}

// Create сохраняет объявление и его фотографии в одной транзакции.
func (r *PostgresListingRepository) Create(ctx context.Context, house domain.House) (int64, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresListingRepository",
		"method":    "Create",
		"title":     house.Title,
	})

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		repoLogger.Error("Failed to begin transaction", err, nil)
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // после Commit ничего не делает

	query := `
        INSERT INTO houses (title, price, location, description, image, owner_phone, owner_email,
                            bedrooms, bathrooms, area_sqm, property_type, user_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, COALESCE($13::timestamptz, now()))
        RETURNING id`

	// нулевое время - значение по умолчанию из БД
	var createdAt *time.Time
	if !house.CreatedAt.IsZero() {
		createdAt = &house.CreatedAt
	}

	var id int64
	err = tx.QueryRow(ctx, query,
		house.Title,
		house.Price,
		house.Location,
		house.Description,
		house.Image,
		house.OwnerPhone,
		house.OwnerEmail,
		house.Bedrooms,
		house.Bathrooms,
		house.AreaSqm,
		house.PropertyType,
		house.OwnerID,
		createdAt,
	).Scan(&id)
	if err != nil {
		repoLogger.Error("Failed to insert listing", err, port.Fields{"query": query})
		return 0, fmt.Errorf("failed to insert listing: %w", err)
	}

	if len(house.Images) > 0 {
		batch := &pgx.Batch{}
		for i, filename := range house.Images {
			batch.Queue(`INSERT INTO house_images (house_id, filename, position) VALUES ($1, $2, $3)`, id, filename, i)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			repoLogger.Error("Failed to insert listing images", err, port.Fields{"images": len(house.Images)})
			return 0, fmt.Errorf("failed to insert images for listing %d: %w", id, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		repoLogger.Error("Failed to commit listing", err, nil)
		return 0, fmt.Errorf("failed to commit listing: %w", err)
	}

	repoLogger.Info("Listing created.", port.Fields{"house_id": id, "images": len(house.Images)})
	return id, nil
}

// Delete удаляет объявление. Фотографии удаляются каскадом по внешнему ключу.
func (r *PostgresListingRepository) Delete(ctx context.Context, id int64) error {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresListingRepository",
		"method":    "Delete",
		"house_id":  id,
	})

	query := `DELETE FROM houses WHERE id = $1`
	cmdTag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		repoLogger.Error("Failed to delete listing", err, port.Fields{"query": query})
		return fmt.Errorf("failed to delete listing %d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		repoLogger.Warn("Listing to delete not found.", nil)
		return domain.ErrListingNotFound
	}

	repoLogger.Info("Listing deleted.", nil)
	return nil
}

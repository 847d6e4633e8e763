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

const userColumns = `id, username, email, password_hash, is_admin, created_at`

// PostgresUserRepository - реализация UserRepositoryPort для PostgreSQL.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepository(pool *pgxpool.Pool) (*PostgresUserRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresUserRepository{pool: pool}, nil
}

// Create сохраняет пользователя и возвращает его id. Нарушение уникальности
// имени или email превращается в domain.ErrUsernameInUse / domain.ErrEmailInUse.
func (r *PostgresUserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresUserRepository",
		"method":    "Create",
		"username":  user.Username,
		"email":     user.Email,
	})

	query := `INSERT INTO users (username, email, password_hash, is_admin, created_at)
VALUES ($1, $2, $3, $4, $5) RETURNING id`

	repoLogger.Debug("Executing query to create user.", nil)
	var id int64
	err := r.pool.QueryRow(ctx, query, user.Username, user.Email, user.PasswordHash, user.IsAdmin, user.CreatedAt).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // 23505 - unique_violation
			repoLogger.Warn("User already exists.", port.Fields{"constraint": pgErr.ConstraintName})
			if pgErr.ConstraintName == "users_email_lower_idx" {
				return 0, domain.ErrEmailInUse
			}
			return 0, domain.ErrUsernameInUse
		}
		repoLogger.Error("Failed to create user", err, port.Fields{"query": query})
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	repoLogger.Debug("User created successfully.", port.Fields{"user_id": id})
	return id, nil
}

// FindByUsername возвращает (nil, nil), если пользователь не найден.
func (r *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, "FindByUsername", `lower(username) = lower($1)`, username)
}

// FindByEmail - аналогично FindByUsername.
func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "FindByEmail", `lower(email) = lower($1)`, email)
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, "FindByID", `id = $1`, id)
}

func (r *PostgresUserRepository) findOne(ctx context.Context, method, where string, arg any) (*domain.User, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresUserRepository",
		"method":    method,
	})

	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where

	var user domain.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Debug("User not found.", nil)
			return nil, nil
		}
		repoLogger.Error("Failed to find user", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &user, nil
}

package postgres_adapter

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS users (
    id            BIGSERIAL PRIMARY KEY,
    username      TEXT NOT NULL,
    email         TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    is_admin      BOOLEAN NOT NULL DEFAULT false,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE UNIQUE INDEX IF NOT EXISTS users_username_lower_idx ON users (lower(username));
CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower_idx ON users (lower(email));

CREATE TABLE IF NOT EXISTS houses (
    id            BIGSERIAL PRIMARY KEY,
    title         TEXT NOT NULL,
    price         TEXT NOT NULL,
    location      TEXT NOT NULL,
    description   TEXT NOT NULL DEFAULT '',
    image         TEXT NOT NULL DEFAULT '',
    owner_phone   TEXT NOT NULL DEFAULT '',
    owner_email   TEXT NOT NULL DEFAULT '',
    bedrooms      INTEGER NOT NULL DEFAULT 3,
    bathrooms     DOUBLE PRECISION NOT NULL DEFAULT 2.0,
    area_sqm      INTEGER NOT NULL DEFAULT 150,
    property_type TEXT NOT NULL DEFAULT 'House',
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS house_images (
    id         BIGSERIAL PRIMARY KEY,
    house_id   BIGINT NOT NULL REFERENCES houses(id) ON DELETE CASCADE,
    filename   TEXT NOT NULL,
    position   INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS house_images_house_id_idx ON house_images (house_id);

-- владелец объявления; старые объявления остаются без владельца
ALTER TABLE houses ADD COLUMN IF NOT EXISTS user_id BIGINT REFERENCES users(id) ON DELETE SET NULL;
CREATE INDEX IF NOT EXISTS houses_user_id_idx ON houses (user_id);

CREATE TABLE IF NOT EXISTS user_favorites (
    user_id    BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    house_id   BIGINT NOT NULL REFERENCES houses(id) ON DELETE CASCADE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (user_id, house_id)
);
`

// EnsureSchema создает таблицы пользователей, объявлений и избранного, если их еще нет.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("failed to apply listings schema: %w", err)
	}
	return nil
}

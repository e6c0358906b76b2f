package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const migrateTimeout = 10 * time.Second

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id          BIGSERIAL PRIMARY KEY,
	name        VARCHAR(100) NOT NULL CHECK (name <> ''),
	description VARCHAR(250) NOT NULL DEFAULT '',
	price       NUMERIC NOT NULL,
	available   BOOLEAN NOT NULL DEFAULT TRUE,
	category    VARCHAR(16) NOT NULL DEFAULT 'UNKNOWN'
		CHECK (category IN ('UNKNOWN', 'CLOTHS', 'FOOD', 'HOUSEWARES', 'AUTOMOTIVE', 'TOOLS'))
);

CREATE INDEX IF NOT EXISTS products_name_idx ON products (name);
CREATE INDEX IF NOT EXISTS products_category_idx ON products (category);
`

// Migrate creates the products table when it does not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	return withTimeout(ctx, migrateTimeout, func(ctx context.Context) error {
		if _, err := db.ExecContext(ctx, schema); err != nil {
			return fmt.Errorf("migrate products: %w", err)
		}
		return nil
	})
}

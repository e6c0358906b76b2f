package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second

	pgCheckViolation    = "23514"
	pgNumericOutOfRange = "22003"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *PostgresStore) Insert(ctx context.Context, p Product) (int64, error) {
	var id int64

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `
			INSERT INTO products (name, description, price, available, category)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, p.Name, p.Description, p.Price, p.Available, p.Category).Scan(&id)
	})
	if err != nil {
		return 0, storeErr("insert product", err)
	}
	return id, nil
}

func (s *PostgresStore) Update(ctx context.Context, id int64, p Product) error {
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `
			UPDATE products
			SET name = $2, description = $3, price = $4, available = $5, category = $6
			WHERE id = $1
		`, id, p.Name, p.Description, p.Price, p.Available, p.Category)
		return err
	})
	if err != nil {
		return storeErr("update product", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
		return err
	})
	if err != nil {
		return storeErr("delete product", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id int64) (Product, bool, error) {
	var p Product

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return scanProduct(s.db.QueryRowContext(ctx, `
			SELECT id, name, description, price, available, category
			FROM products
			WHERE id = $1
		`, id), &p)
	})

	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, false, nil
	}
	if err != nil {
		return Product{}, false, storeErr("get product", err)
	}
	return p, true, nil
}

func (s *PostgresStore) List(ctx context.Context, f Filter) ([]Product, error) {
	where, args := filterClause(f)

	var out []Product
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `
			SELECT id, name, description, price, available, category
			FROM products`+where+`
			ORDER BY id ASC
		`, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]Product, 0, 16)
		for rows.Next() {
			var p Product
			if err := scanProduct(rows, &p); err != nil {
				return err
			}
			out = append(out, p)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, storeErr("list products", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner, p *Product) error {
	var id int64
	if err := row.Scan(&id, &p.Name, &p.Description, &p.Price, &p.Available, &p.Category); err != nil {
		return err
	}
	p.ID = &id
	return nil
}

func filterClause(f Filter) (string, []any) {
	var (
		col string
		arg any
	)
	switch {
	case f.Name != nil:
		col, arg = "name", *f.Name
	case f.Category != nil:
		col, arg = "category", *f.Category
	case f.Available != nil:
		col, arg = "available", *f.Available
	case f.Price != nil:
		col, arg = "price", *f.Price
	default:
		return "", nil
	}

	return "\n\t\t\tWHERE " + col + " = $1", []any{arg}
}

// storeErr turns check-constraint and numeric range rejections into
// validation errors so they reach the client as a 400; anything else stays a
// server error.
func storeErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (pgErr.Code == pgCheckViolation || pgErr.Code == pgNumericOutOfRange) {
		return validationErr(fmt.Sprintf("Invalid product: %s", pgErr.Message))
	}
	return fmt.Errorf("%s: %w", op, err)
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}

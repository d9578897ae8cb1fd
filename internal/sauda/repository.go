package sauda

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/textilehub/textilehub/internal/platform/db"
)

// Repository provides PostgreSQL backed persistence for synced orders.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns all orders in sync order, pending before completed.
func (r *Repository) List(ctx context.Context) ([]Order, error) {
	query := `
		SELECT id, order_date, quality, buyer, mfg, pending, unit, ordered, sent, status
		FROM sauda_orders
		ORDER BY status DESC, seq`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sauda: list: %w", err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID,
			&o.Date,
			&o.Quality,
			&o.Buyer,
			&o.Mfg,
			&o.Pending,
			&o.Unit,
			&o.Ordered,
			&o.Sent,
			&o.Status,
		); err != nil {
			return nil, fmt.Errorf("sauda: scan: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sauda: rows: %w", err)
	}
	return orders, nil
}

// ReplaceSnapshot swaps the full order set inside one transaction.
func (r *Repository) ReplaceSnapshot(ctx context.Context, orders []Order) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM sauda_orders`); err != nil {
			return fmt.Errorf("sauda: clear snapshot: %w", err)
		}
		query := `
			INSERT INTO sauda_orders (id, order_date, quality, buyer, mfg, pending, unit, ordered, sent, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
		for _, o := range orders {
			if _, err := tx.Exec(ctx, query,
				o.ID,
				o.Date,
				o.Quality,
				o.Buyer,
				o.Mfg,
				o.Pending,
				o.Unit,
				o.Ordered,
				o.Sent,
				o.Status,
			); err != nil {
				return fmt.Errorf("sauda: insert %s: %w", o.ID, err)
			}
		}
		return nil
	})
}

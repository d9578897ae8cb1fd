package invoice

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/textilehub/textilehub/internal/platform/db"
)

// Repository provides PostgreSQL backed persistence for synced invoices.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns all invoices in sync order.
func (r *Repository) List(ctx context.Context) ([]Invoice, error) {
	query := `
		SELECT id, number, issue_date, buyer, mfg, amount, due_date, status, ageing, is_return, payment_type
		FROM invoices
		ORDER BY seq`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("invoice: list: %w", err)
	}
	defer rows.Close()

	var invoices []Invoice
	for rows.Next() {
		var inv Invoice
		if err := rows.Scan(
			&inv.ID,
			&inv.Number,
			&inv.Date,
			&inv.Buyer,
			&inv.Mfg,
			&inv.Amount,
			&inv.Due,
			&inv.Status,
			&inv.Ageing,
			&inv.IsReturn,
			&inv.PaymentType,
		); err != nil {
			return nil, fmt.Errorf("invoice: scan: %w", err)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("invoice: rows: %w", err)
	}
	return invoices, nil
}

// ReplaceSnapshot swaps the full invoice set inside one transaction so
// readers never see a partially synced state.
func (r *Repository) ReplaceSnapshot(ctx context.Context, invoices []Invoice) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM invoices`); err != nil {
			return fmt.Errorf("invoice: clear snapshot: %w", err)
		}
		query := `
			INSERT INTO invoices (id, number, issue_date, buyer, mfg, amount, due_date, status, ageing, is_return, payment_type)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
		for _, inv := range invoices {
			if _, err := tx.Exec(ctx, query,
				inv.ID,
				inv.Number,
				inv.Date,
				inv.Buyer,
				inv.Mfg,
				inv.Amount,
				inv.Due,
				inv.Status,
				inv.Ageing,
				inv.IsReturn,
				inv.PaymentType,
			); err != nil {
				return fmt.Errorf("invoice: insert %s: %w", inv.ID, err)
			}
		}
		return nil
	})
}

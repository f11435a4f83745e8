package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"lickees/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository is the Postgres-backed sales store. The schema matches the
// hosted "sales" table, so the same DSN works against a Supabase project.
type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) ListSales(ctx context.Context) ([]domain.SaleRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT
			id::text,
			date,
			month,
			time,
			items,
			total,
			pay_mode,
			created_at
		FROM sales
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	sales := make([]domain.SaleRecord, 0)
	for rows.Next() {
		sale, err := scanSaleRow(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sales: %w", err)
	}
	return sales, nil
}

func (r *Repository) InsertSale(ctx context.Context, input domain.SaleInput) (domain.SaleRecord, error) {
	if len(input.Items) == 0 {
		return domain.SaleRecord{}, fmt.Errorf("items cannot be empty")
	}
	items, err := json.Marshal(input.Items)
	if err != nil {
		return domain.SaleRecord{}, fmt.Errorf("encode sale items: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO sales (
			date,
			month,
			time,
			items,
			total,
			pay_mode
		)
		VALUES ($1, $2, $3, $4::jsonb, $5, $6)
		RETURNING
			id::text,
			date,
			month,
			time,
			items,
			total,
			pay_mode,
			created_at
	`, input.Date, input.Month, input.Time, string(items), input.Total, string(input.PaymentMethod))

	sale, err := scanSaleRow(row)
	if err != nil {
		return domain.SaleRecord{}, fmt.Errorf("insert sale: %w", err)
	}
	return sale, nil
}

func (r *Repository) DeleteSale(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrEmptyID
	}
	numericID, err := strconv.ParseInt(id, 10, 64)
	if err != nil || numericID <= 0 {
		return ErrNotFound
	}

	cmd, err := r.pool.Exec(ctx, "DELETE FROM sales WHERE id = $1", numericID)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanSaleRow(row pgx.Row) (domain.SaleRecord, error) {
	var (
		sale    domain.SaleRecord
		items   []byte
		payMode string
	)
	if err := row.Scan(
		&sale.ID,
		&sale.Date,
		&sale.Month,
		&sale.Time,
		&items,
		&sale.Total,
		&payMode,
		&sale.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.SaleRecord{}, ErrNotFound
		}
		return domain.SaleRecord{}, fmt.Errorf("scan sale: %w", err)
	}
	sale.PaymentMethod = domain.PaymentMethod(payMode)
	sale.Items = make([]domain.LineItem, 0)
	if len(items) > 0 {
		if err := json.Unmarshal(items, &sale.Items); err != nil {
			return domain.SaleRecord{}, fmt.Errorf("decode items of sale %s: %w", sale.ID, err)
		}
	}
	return sale, nil
}

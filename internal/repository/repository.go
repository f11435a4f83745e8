package repository

import (
	"context"
	"errors"

	"lickees/internal/domain"
)

var ErrNotFound = errors.New("not found")

// ErrEmptyID is returned when a delete is asked for without an id.
var ErrEmptyID = errors.New("empty sale ID")

// SalesStore is the system of record for completed sales.
type SalesStore interface {
	// ListSales returns every sale, newest first by creation time.
	ListSales(ctx context.Context) ([]domain.SaleRecord, error)
	InsertSale(ctx context.Context, input domain.SaleInput) (domain.SaleRecord, error)
	DeleteSale(ctx context.Context, id string) error
}

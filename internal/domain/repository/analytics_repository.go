package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesRow is one denormalized order line item joined with its product.
// product_name and category are copies taken at query time and reflect the
// current catalog state, not the values at order time.
type SalesRow struct {
	OrderDate   time.Time
	Quantity    int
	UnitPrice   decimal.Decimal
	ProductID   uuid.UUID
	ProductName string
	Category    string
}

// Revenue returns quantity * unit price, unrounded
func (r SalesRow) Revenue() decimal.Decimal {
	return r.UnitPrice.Mul(decimal.NewFromInt(int64(r.Quantity)))
}

// AnalyticsRepository defines the read-only row extraction for analytics queries
type AnalyticsRepository interface {
	// FetchSalesRows joins orders, order items and products for the given
	// date range. Both bounds are inclusive; a nil bound is unbounded on
	// that side. Returns an empty slice, not an error, when nothing matches.
	FetchSalesRows(ctx context.Context, startDate, endDate *time.Time) ([]SalesRow, error)
}

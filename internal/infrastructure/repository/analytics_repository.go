package repository

import (
	"context"
	"time"

	domainRepo "github.com/salestrack/salestrack-api/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// FetchSalesRows joins orders, order items and products into denormalized
// sales rows. The inner join on products drops line items whose product has
// been removed from the catalog.
func (r *analyticsRepository) FetchSalesRows(ctx context.Context, startDate, endDate *time.Time) ([]domainRepo.SalesRow, error) {
	query := `
		SELECT
			o.order_date as order_date,
			oi.quantity as quantity,
			oi.unit_price as unit_price,
			p.id as product_id,
			p.name as product_name,
			p.category as category
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		JOIN products p ON p.id = oi.product_id
		WHERE o.deleted_at IS NULL
		AND oi.deleted_at IS NULL
		AND p.deleted_at IS NULL`

	args := make([]interface{}, 0, 2)
	if startDate != nil {
		query += " AND o.order_date >= ?"
		args = append(args, *startDate)
	}
	if endDate != nil {
		query += " AND o.order_date <= ?"
		args = append(args, *endDate)
	}
	query += " ORDER BY o.order_date ASC"

	rows := make([]domainRepo.SalesRow, 0)
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

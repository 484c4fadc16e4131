package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salestrack/salestrack-api/internal/domain/entity"
	"github.com/salestrack/salestrack-api/internal/domain/enum"
	"github.com/salestrack/salestrack-api/pkg/pagination"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	// Create persists the order together with its line items in one transaction.
	// The order and all items commit atomically or not at all.
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.OrderStatus
	CustomerID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

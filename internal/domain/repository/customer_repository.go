package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/salestrack/salestrack-api/internal/domain/entity"
	"github.com/salestrack/salestrack-api/pkg/pagination"
)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error)
}

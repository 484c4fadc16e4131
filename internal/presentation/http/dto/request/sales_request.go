package request

import "github.com/google/uuid"

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Name     string  `json:"name" binding:"required,min=1,max=255"`
	Category string  `json:"category" binding:"required,min=1,max=255"`
	Price    float64 `json:"price" binding:"min=0"`
}

// CreateCustomerRequest represents a customer creation request
type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=255"`
	Email string `json:"email" binding:"required,email"`
}

// CreateOrderItemRequest represents a line item in an order creation request.
// A nil unit_price defaults to the product's current catalog price.
type CreateOrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
	UnitPrice *float64  `json:"unit_price" binding:"omitempty,min=0"`
}

// CreateOrderRequest represents an order creation request
type CreateOrderRequest struct {
	CustomerID uuid.UUID                `json:"customer_id" binding:"required"`
	OrderDate  *string                  `json:"order_date"`
	Status     *string                  `json:"status"`
	Items      []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

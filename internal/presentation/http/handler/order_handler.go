package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/salestrack/salestrack-api/internal/application/service"
	"github.com/salestrack/salestrack-api/internal/domain/enum"
	"github.com/salestrack/salestrack-api/internal/domain/repository"
	"github.com/salestrack/salestrack-api/internal/presentation/http/dto/request"
	"github.com/salestrack/salestrack-api/internal/presentation/http/dto/response"
	"github.com/salestrack/salestrack-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create handles creating an order with its line items
func (h *OrderHandler) Create(c *gin.Context) {
	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreateOrderInput{
		CustomerID: req.CustomerID,
		Items:      make([]service.OrderItemInput, 0, len(req.Items)),
	}

	if req.OrderDate != nil {
		orderDate, err := parseDateParam(*req.OrderDate)
		if err != nil {
			response.Error(c, err)
			return
		}
		input.OrderDate = orderDate
	}

	if req.Status != nil {
		status, ok := enum.ParseOrderStatus(*req.Status)
		if !ok {
			response.BadRequest(c, "Status must be created, completed, or cancelled")
			return
		}
		input.Status = &status
	}

	for _, item := range req.Items {
		itemInput := service.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		if item.UnitPrice != nil {
			unitPrice := decimal.NewFromFloat(*item.UnitPrice)
			itemInput.UnitPrice = &unitPrice
		}
		input.Items = append(input.Items, itemInput)
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created successfully", order)
}

// List handles listing orders
func (h *OrderHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.OrderFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
	}

	if statusStr := c.Query("status"); statusStr != "" {
		if status, ok := enum.ParseOrderStatus(statusStr); ok {
			params.Status = &status
		}
	}

	if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
		if customerID, err := uuid.Parse(customerIDStr); err == nil {
			params.CustomerID = &customerID
		}
	}

	startDate, endDate, err := parseDateRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	params.StartDate = startDate
	params.EndDate = endDate

	result, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

// Get handles getting a single order with its items
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/salestrack/salestrack-api/internal/application/service"
	"github.com/salestrack/salestrack-api/internal/config"
	"github.com/salestrack/salestrack-api/internal/presentation/http/dto/response"
)

// AnalyticsHandler handles analytics-related HTTP requests
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
	cfg              *config.AnalyticsConfig
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService *service.AnalyticsService, cfg *config.AnalyticsConfig) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService, cfg: cfg}
}

// SalesOverTime handles the time-bucketed revenue query
func (h *AnalyticsHandler) SalesOverTime(c *gin.Context) {
	startDate, endDate, err := parseDateRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		response.Error(c, err)
		return
	}

	interval := c.DefaultQuery("interval", "daily")

	buckets, err := h.analyticsService.SalesOverTime(c.Request.Context(), interval, startDate, endDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales over time retrieved successfully", buckets)
}

// TopProducts handles the product ranking query
func (h *AnalyticsHandler) TopProducts(c *gin.Context) {
	startDate, endDate, err := parseDateRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		response.Error(c, err)
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(h.cfg.TopProductsDefaultLimit)))
	if err != nil {
		response.BadRequest(c, "Limit must be an integer")
		return
	}
	limit = h.clampLimit(limit)

	products, err := h.analyticsService.TopProducts(c.Request.Context(), limit, startDate, endDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Top products retrieved successfully", products)
}

// CategorySummary handles the per-category aggregation query
func (h *AnalyticsHandler) CategorySummary(c *gin.Context) {
	startDate, endDate, err := parseDateRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		response.Error(c, err)
		return
	}

	summary, err := h.analyticsService.CategorySummary(c.Request.Context(), startDate, endDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Category summary retrieved successfully", summary)
}

// SalesCSV handles the flat CSV export. An empty range produces an
// empty-body 204 rather than a header-only file.
func (h *AnalyticsHandler) SalesCSV(c *gin.Context) {
	startDate, endDate, err := parseDateRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		response.Error(c, err)
		return
	}

	csvBody, err := h.analyticsService.SalesCSV(c.Request.Context(), startDate, endDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	if csvBody == "" {
		response.NoContent(c)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="sales.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csvBody))
}

// clampLimit keeps the top-products limit inside [1, max] before it
// reaches the engine.
func (h *AnalyticsHandler) clampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > h.cfg.TopProductsMaxLimit {
		return h.cfg.TopProductsMaxLimit
	}
	return limit
}

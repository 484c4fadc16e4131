package service

import (
	"context"
	"encoding/csv"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/salestrack/salestrack-api/internal/domain/repository"
	"github.com/salestrack/salestrack-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// Interval is a calendar granularity for sales-over-time bucketing
type Interval string

const (
	IntervalDaily   Interval = "daily"
	IntervalWeekly  Interval = "weekly"
	IntervalMonthly Interval = "monthly"
)

// ParseInterval validates an interval string. Anything other than the three
// recognized values is a client error.
func ParseInterval(s string) (Interval, error) {
	switch Interval(s) {
	case IntervalDaily, IntervalWeekly, IntervalMonthly:
		return Interval(s), nil
	}
	return "", apperror.NewBadRequestError("Interval must be daily, weekly, or monthly")
}

// TimeBucket is revenue summed over one calendar period
type TimeBucket struct {
	PeriodStart time.Time `json:"period_start"`
	Revenue     float64   `json:"revenue"`
}

// ProductAggregate is revenue and quantity summed per product
type ProductAggregate struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Category    string    `json:"category"`
	Revenue     float64   `json:"revenue"`
	Quantity    int       `json:"quantity"`
}

// CategoryAggregate is revenue and quantity summed per category
type CategoryAggregate struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
	Quantity int     `json:"quantity"`
}

// AnalyticsService derives aggregate sales views from extracted sales rows.
// Every call is stateless: rows are fetched once per request and discarded
// after the aggregation completes.
type AnalyticsService struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(analyticsRepo repository.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{analyticsRepo: analyticsRepo}
}

// SalesOverTime returns revenue bucketed by calendar interval, ordered by
// period start ascending. Periods with no orders are omitted, never
// zero-filled. An unrecognized interval fails before any rows are fetched.
func (s *AnalyticsService) SalesOverTime(ctx context.Context, interval string, startDate, endDate *time.Time) ([]TimeBucket, error) {
	parsed, err := ParseInterval(interval)
	if err != nil {
		return nil, err
	}

	rows, err := s.analyticsRepo.FetchSalesRows(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	return bucketRevenue(rows, parsed), nil
}

// TopProducts returns up to limit products ranked by revenue descending.
// Ties keep the extraction order of the first row seen for each product.
// The caller clamps limit; this function applies it as-is.
func (s *AnalyticsService) TopProducts(ctx context.Context, limit int, startDate, endDate *time.Time) ([]ProductAggregate, error) {
	rows, err := s.analyticsRepo.FetchSalesRows(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	aggregates := groupByProduct(rows)
	if len(aggregates) > limit {
		aggregates = aggregates[:limit]
	}
	return aggregates, nil
}

// CategorySummary returns revenue and quantity per distinct category present
// in the filtered rows, in first-seen order.
func (s *AnalyticsService) CategorySummary(ctx context.Context, startDate, endDate *time.Time) ([]CategoryAggregate, error) {
	rows, err := s.analyticsRepo.FetchSalesRows(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	return groupByCategory(rows), nil
}

// SalesCSV renders one CSV row per sale line item, unaggregated, with a
// header row. Empty input yields an empty string so the caller can send an
// empty-body response instead of a header-only file.
func (s *AnalyticsService) SalesCSV(ctx context.Context, startDate, endDate *time.Time) (string, error) {
	rows, err := s.analyticsRepo.FetchSalesRows(ctx, startDate, endDate)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", nil
	}

	return renderSalesCSV(rows), nil
}

// bucketRevenue assigns each row to exactly one calendar bucket and sums
// revenue per bucket, rounding only after summation.
func bucketRevenue(rows []repository.SalesRow, interval Interval) []TimeBucket {
	totals := make(map[time.Time]decimal.Decimal)
	for _, row := range rows {
		start := bucketStart(row.OrderDate, interval)
		totals[start] = totals[start].Add(row.Revenue())
	}

	buckets := make([]TimeBucket, 0, len(totals))
	for start, revenue := range totals {
		buckets = append(buckets, TimeBucket{
			PeriodStart: start,
			Revenue:     roundRevenue(revenue),
		})
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].PeriodStart.Before(buckets[j].PeriodStart)
	})
	return buckets
}

// bucketStart truncates an order date to its calendar bucket boundary.
// All bucketing is in UTC; weekly buckets anchor to the ISO week start
// (Monday).
func bucketStart(t time.Time, interval Interval) time.Time {
	t = t.UTC()
	switch interval {
	case IntervalWeekly:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
		return day.AddDate(0, 0, -offset)
	case IntervalMonthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
}

// groupByProduct accumulates revenue and quantity per product in one pass,
// then sorts by revenue descending. The sort is stable so equal-revenue
// products keep their first-seen order.
func groupByProduct(rows []repository.SalesRow) []ProductAggregate {
	type productTotal struct {
		row      repository.SalesRow
		revenue  decimal.Decimal
		quantity int
	}

	totals := make(map[uuid.UUID]*productTotal)
	order := make([]uuid.UUID, 0)

	for _, row := range rows {
		total, exists := totals[row.ProductID]
		if !exists {
			total = &productTotal{row: row}
			totals[row.ProductID] = total
			order = append(order, row.ProductID)
		}
		total.revenue = total.revenue.Add(row.Revenue())
		total.quantity += row.Quantity
	}

	// Rank on the unrounded sums; rounding first would collapse sub-cent
	// differences into ties.
	sort.SliceStable(order, func(i, j int) bool {
		return totals[order[i]].revenue.Cmp(totals[order[j]].revenue) > 0
	})

	aggregates := make([]ProductAggregate, 0, len(order))
	for _, id := range order {
		total := totals[id]
		aggregates = append(aggregates, ProductAggregate{
			ProductID:   total.row.ProductID,
			ProductName: total.row.ProductName,
			Category:    total.row.Category,
			Revenue:     roundRevenue(total.revenue),
			Quantity:    total.quantity,
		})
	}
	return aggregates
}

// groupByCategory accumulates revenue and quantity per category in one pass,
// preserving first-seen order.
func groupByCategory(rows []repository.SalesRow) []CategoryAggregate {
	type categoryTotal struct {
		revenue  decimal.Decimal
		quantity int
	}

	totals := make(map[string]*categoryTotal)
	order := make([]string, 0)

	for _, row := range rows {
		total, exists := totals[row.Category]
		if !exists {
			total = &categoryTotal{}
			totals[row.Category] = total
			order = append(order, row.Category)
		}
		total.revenue = total.revenue.Add(row.Revenue())
		total.quantity += row.Quantity
	}

	aggregates := make([]CategoryAggregate, 0, len(order))
	for _, category := range order {
		total := totals[category]
		aggregates = append(aggregates, CategoryAggregate{
			Category: category,
			Revenue:  roundRevenue(total.revenue),
			Quantity: total.quantity,
		})
	}
	return aggregates
}

// renderSalesCSV writes the fixed export columns, one line per sales row,
// with RFC 3339 timestamps and two-decimal money fields.
func renderSalesCSV(rows []repository.SalesRow) string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	_ = w.Write([]string{"order_date", "product_id", "product_name", "category", "quantity", "unit_price", "revenue"})
	for _, row := range rows {
		_ = w.Write([]string{
			row.OrderDate.UTC().Format(time.RFC3339),
			row.ProductID.String(),
			row.ProductName,
			row.Category,
			strconv.Itoa(row.Quantity),
			row.UnitPrice.StringFixed(2),
			row.Revenue().Round(2).StringFixed(2),
		})
	}
	w.Flush()

	return sb.String()
}

// roundRevenue rounds a summed revenue to 2 decimal places at the output
// boundary. Intermediate sums stay unrounded so error cannot compound
// across groupings.
func roundRevenue(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

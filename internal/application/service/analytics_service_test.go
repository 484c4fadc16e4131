package service

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/salestrack/salestrack-api/internal/domain/repository"
	"github.com/salestrack/salestrack-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// fakeAnalyticsRepo returns canned sales rows and records how often it was hit
type fakeAnalyticsRepo struct {
	rows       []repository.SalesRow
	err        error
	fetchCalls int
}

func (f *fakeAnalyticsRepo) FetchSalesRows(ctx context.Context, startDate, endDate *time.Time) ([]repository.SalesRow, error) {
	f.fetchCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

// seededRows mirrors a small two-week shop: one Stationery sale in the first
// week, two Electronics sales of the same product one week later.
func seededRows(t *testing.T) (rows []repository.SalesRow, productA, productB uuid.UUID) {
	t.Helper()
	productA = uuid.New()
	productB = uuid.New()
	day1 := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC) // a Monday

	rows = []repository.SalesRow{
		{OrderDate: day1, Quantity: 3, UnitPrice: mustDecimal(t, "5"), ProductID: productA, ProductName: "Notebook", Category: "Stationery"},
		{OrderDate: day1.AddDate(0, 0, 7), Quantity: 1, UnitPrice: mustDecimal(t, "40"), ProductID: productB, ProductName: "Desk Lamp", Category: "Electronics"},
		{OrderDate: day1.AddDate(0, 0, 7), Quantity: 2, UnitPrice: mustDecimal(t, "40"), ProductID: productB, ProductName: "Desk Lamp", Category: "Electronics"},
	}
	return rows, productA, productB
}

func TestAnalyticsService_SalesOverTime_InvalidInterval(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	svc := NewAnalyticsService(repo)

	_, err := svc.SalesOverTime(context.Background(), "yearly", nil, nil)
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	require.Equal(t, 400, appErr.Code)
	require.Equal(t, 0, repo.fetchCalls, "invalid interval must fail before any rows are fetched")
}

func TestAnalyticsService_SalesOverTime_EmptyInput(t *testing.T) {
	svc := NewAnalyticsService(&fakeAnalyticsRepo{})

	for _, interval := range []string{"daily", "weekly", "monthly"} {
		buckets, err := svc.SalesOverTime(context.Background(), interval, nil, nil)
		require.NoError(t, err)
		require.Empty(t, buckets)
	}
}

func TestAnalyticsService_SalesOverTime_Weekly(t *testing.T) {
	rows, _, _ := seededRows(t)
	svc := NewAnalyticsService(&fakeAnalyticsRepo{rows: rows})

	buckets, err := svc.SalesOverTime(context.Background(), "weekly", nil, nil)
	require.NoError(t, err)
	require.Len(t, buckets, 2)

	require.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), buckets[0].PeriodStart)
	require.Equal(t, 15.0, buckets[0].Revenue)
	require.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), buckets[1].PeriodStart)
	require.Equal(t, 120.0, buckets[1].Revenue)
}

func TestAnalyticsService_SalesOverTime_BucketBoundaries(t *testing.T) {
	productID := uuid.New()
	row := func(ts time.Time) repository.SalesRow {
		return repository.SalesRow{OrderDate: ts, Quantity: 1, UnitPrice: mustDecimal(t, "10"), ProductID: productID, ProductName: "Widget", Category: "Misc"}
	}

	tests := []struct {
		name       string
		interval   string
		rows       []repository.SalesRow
		wantStarts []time.Time
	}{
		{
			name:     "daily splits at midnight",
			interval: "daily",
			rows: []repository.SalesRow{
				row(time.Date(2024, 3, 1, 23, 59, 59, 0, time.UTC)),
				row(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)),
			},
			wantStarts: []time.Time{
				time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name:     "weekly anchors to Monday",
			interval: "weekly",
			rows: []repository.SalesRow{
				row(time.Date(2024, 1, 7, 12, 0, 0, 0, time.UTC)), // Sunday
				row(time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC)), // Monday
			},
			wantStarts: []time.Time{
				time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name:     "monthly splits at month start",
			interval: "monthly",
			rows: []repository.SalesRow{
				row(time.Date(2024, 1, 31, 23, 0, 0, 0, time.UTC)),
				row(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)),
			},
			wantStarts: []time.Time{
				time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewAnalyticsService(&fakeAnalyticsRepo{rows: tc.rows})
			buckets, err := svc.SalesOverTime(context.Background(), tc.interval, nil, nil)
			require.NoError(t, err)
			require.Len(t, buckets, len(tc.wantStarts))
			for i, want := range tc.wantStarts {
				require.Equal(t, want, buckets[i].PeriodStart)
			}
		})
	}
}

func TestAnalyticsService_SalesOverTime_SparseBuckets(t *testing.T) {
	productID := uuid.New()
	// Two sales three days apart; the day in between has no orders and must
	// not be synthesized as a zero bucket.
	rows := []repository.SalesRow{
		{OrderDate: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC), Quantity: 1, UnitPrice: mustDecimal(t, "7.50"), ProductID: productID, ProductName: "Widget", Category: "Misc"},
		{OrderDate: time.Date(2024, 5, 4, 9, 0, 0, 0, time.UTC), Quantity: 2, UnitPrice: mustDecimal(t, "7.50"), ProductID: productID, ProductName: "Widget", Category: "Misc"},
	}
	svc := NewAnalyticsService(&fakeAnalyticsRepo{rows: rows})

	buckets, err := svc.SalesOverTime(context.Background(), "daily", nil, nil)
	require.NoError(t, err)
	require.Len(t, buckets, 2)
	require.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), buckets[0].PeriodStart)
	require.Equal(t, time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC), buckets[1].PeriodStart)
}

func TestAnalyticsService_SalesOverTime_RoundsAfterSummation(t *testing.T) {
	productID := uuid.New()
	day := time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC)
	// Three line items at 1.11 and quantity 3: per-row rounding of 3.33
	// would already be exact, so use a price whose per-row revenue carries
	// a half cent. 2 * 1.115 = 2.23 exactly only when summed first:
	// rounding each of the two 1.115 rows to 1.12 would yield 2.24.
	rows := []repository.SalesRow{
		{OrderDate: day, Quantity: 1, UnitPrice: mustDecimal(t, "1.115"), ProductID: productID, ProductName: "Widget", Category: "Misc"},
		{OrderDate: day, Quantity: 1, UnitPrice: mustDecimal(t, "1.115"), ProductID: productID, ProductName: "Widget", Category: "Misc"},
	}
	svc := NewAnalyticsService(&fakeAnalyticsRepo{rows: rows})

	buckets, err := svc.SalesOverTime(context.Background(), "daily", nil, nil)
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	require.Equal(t, 2.23, buckets[0].Revenue)
}

func TestAnalyticsService_SalesOverTime_SumOfBucketsMatchesTotal(t *testing.T) {
	rows, _, _ := seededRows(t)
	svc := NewAnalyticsService(&fakeAnalyticsRepo{rows: rows})

	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Revenue())
	}
	wantTotal, _ := total.Round(2).Float64()

	for _, interval := range []string{"daily", "weekly", "monthly"} {
		buckets, err := svc.SalesOverTime(context.Background(), interval, nil, nil)
		require.NoError(t, err)

		sum := 0.0
		for _, b := range buckets {
			sum += b.Revenue
		}
		require.InDelta(t, wantTotal, sum, 0.01, "interval %s", interval)
	}
}

func TestAnalyticsService_TopProducts(t *testing.T) {
	rows, _, productB := seededRows(t)
	svc := NewAnalyticsService(&fakeAnalyticsRepo{rows: rows})

	top, err := svc.TopProducts(context.Background(), 1, nil, nil)
	require.NoError(t, err)
	require.Len(t, top, 1)
	require.Equal(t, productB, top[0].ProductID)
	require.Equal(t, "Desk Lamp", top[0].ProductName)
	require.Equal(t, "Electronics", top[0].Category)
	require.Equal(t, 120.0, top[0].Revenue)
	require.Equal(t, 3, top[0].Quantity)
}

func TestAnalyticsService_TopProducts_MonotonicTruncation(t *testing.T) {
	rows, _, _ := seededRows(t)
	svc := NewAnalyticsService(&fakeAnalyticsRepo{rows: rows})

	smaller, err := svc.TopProducts(context.Background(), 1, nil, nil)
	require.NoError(t, err)
	larger, err := svc.TopProducts(context.Background(), 2, nil, nil)
	require.NoError(t, err)

	require.Len(t, larger, 2)
	require.Equal(t, larger[:len(smaller)], smaller)
}

func TestAnalyticsService_TopProducts_StableTieBreak(t *testing.T) {
	first := uuid.New()
	second := uuid.New()
	day := time.Date(2024, 2, 5, 12, 0, 0, 0, time.UTC)

	// Identical revenue; the product extracted first must rank first.
	rows := []repository.SalesRow{
		{OrderDate: day, Quantity: 2, UnitPrice: mustDecimal(t, "10"), ProductID: first, ProductName: "Pen", Category: "Stationery"},
		{OrderDate: day, Quantity: 1, UnitPrice: mustDecimal(t, "20"), ProductID: second, ProductName: "Mouse", Category: "Electronics"},
	}
	svc := NewAnalyticsService(&fakeAnalyticsRepo{rows: rows})

	top, err := svc.TopProducts(context.Background(), 2, nil, nil)
	require.NoError(t, err)
	require.Len(t, top, 2)
	require.Equal(t, first, top[0].ProductID)
	require.Equal(t, second, top[1].ProductID)
}

func TestAnalyticsService_TopProducts_RanksOnUnroundedRevenue(t *testing.T) {
	lower := uuid.New()
	higher := uuid.New()
	day := time.Date(2024, 2, 5, 12, 0, 0, 0, time.UTC)

	// Both sums round to 10.00; the ranking must still see the sub-cent
	// difference and put the higher unrounded sum first.
	rows := []repository.SalesRow{
		{OrderDate: day, Quantity: 1, UnitPrice: mustDecimal(t, "10.002"), ProductID: lower, ProductName: "Ruler", Category: "Stationery"},
		{OrderDate: day, Quantity: 1, UnitPrice: mustDecimal(t, "10.004"), ProductID: higher, ProductName: "Stapler", Category: "Stationery"},
	}
	svc := NewAnalyticsService(&fakeAnalyticsRepo{rows: rows})

	top, err := svc.TopProducts(context.Background(), 1, nil, nil)
	require.NoError(t, err)
	require.Len(t, top, 1)
	require.Equal(t, higher, top[0].ProductID)
	require.Equal(t, "Stapler", top[0].ProductName)
	require.Equal(t, 10.0, top[0].Revenue)
}

func TestAnalyticsService_TopProducts_EmptyInput(t *testing.T) {
	svc := NewAnalyticsService(&fakeAnalyticsRepo{})

	top, err := svc.TopProducts(context.Background(), 10, nil, nil)
	require.NoError(t, err)
	require.Empty(t, top)
}

func TestAnalyticsService_CategorySummary(t *testing.T) {
	rows, _, _ := seededRows(t)
	svc := NewAnalyticsService(&fakeAnalyticsRepo{rows: rows})

	summary, err := svc.CategorySummary(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Len(t, summary, 2)

	require.Equal(t, "Stationery", summary[0].Category)
	require.Equal(t, 15.0, summary[0].Revenue)
	require.Equal(t, 3, summary[0].Quantity)

	require.Equal(t, "Electronics", summary[1].Category)
	require.Equal(t, 120.0, summary[1].Revenue)
	require.Equal(t, 3, summary[1].Quantity)

	totalQuantity := 0
	for _, entry := range summary {
		totalQuantity += entry.Quantity
	}
	require.Equal(t, 6, totalQuantity)
}

func TestAnalyticsService_CategorySummary_EmptyInput(t *testing.T) {
	svc := NewAnalyticsService(&fakeAnalyticsRepo{})

	summary, err := svc.CategorySummary(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Empty(t, summary)
}

func TestAnalyticsService_SalesCSV(t *testing.T) {
	rows, _, productB := seededRows(t)
	svc := NewAnalyticsService(&fakeAnalyticsRepo{rows: rows})

	csvBody, err := svc.SalesCSV(context.Background(), nil, nil)
	require.NoError(t, err)
	require.NotEmpty(t, csvBody)

	records, err := csv.NewReader(strings.NewReader(csvBody)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(rows)+1, "header plus one row per line item")

	require.Equal(t, []string{"order_date", "product_id", "product_name", "category", "quantity", "unit_price", "revenue"}, records[0])

	// Last seeded row: 2 * 40 for product B
	last := records[len(records)-1]
	require.Equal(t, "2024-01-08T10:00:00Z", last[0])
	require.Equal(t, productB.String(), last[1])
	require.Equal(t, "Desk Lamp", last[2])
	require.Equal(t, "Electronics", last[3])
	require.Equal(t, "2", last[4])
	require.Equal(t, "40.00", last[5])
	require.Equal(t, "80.00", last[6])
}

func TestAnalyticsService_SalesCSV_EmptyInput(t *testing.T) {
	svc := NewAnalyticsService(&fakeAnalyticsRepo{})

	csvBody, err := svc.SalesCSV(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Equal(t, "", csvBody)
}

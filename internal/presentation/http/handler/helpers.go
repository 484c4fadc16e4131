package handler

import (
	"time"

	"github.com/salestrack/salestrack-api/pkg/apperror"
)

// dateLayouts are the accepted timestamp formats for date-range query
// parameters, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseDateParam parses an optional date query parameter. An empty value
// returns nil; a malformed one is a client error.
func parseDateParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}

	return nil, apperror.NewBadRequestError("Invalid date: " + value)
}

// parseDateRange parses the optional start_date/end_date pair
func parseDateRange(startValue, endValue string) (startDate, endDate *time.Time, err error) {
	startDate, err = parseDateParam(startValue)
	if err != nil {
		return nil, nil, err
	}
	endDate, err = parseDateParam(endValue)
	if err != nil {
		return nil, nil, err
	}
	return startDate, endDate, nil
}

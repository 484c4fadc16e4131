package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPaginationParams_Validate(t *testing.T) {
	tests := []struct {
		name        string
		params      PaginationParams
		wantPage    int
		wantPerPage int
	}{
		{name: "zero values get defaults", params: PaginationParams{}, wantPage: 1, wantPerPage: 15},
		{name: "negative page clamps to one", params: PaginationParams{Page: -5, PerPage: 20}, wantPage: 1, wantPerPage: 20},
		{name: "per page over max clamps", params: PaginationParams{Page: 2, PerPage: 500}, wantPage: 2, wantPerPage: 100},
		{name: "valid values untouched", params: PaginationParams{Page: 3, PerPage: 25}, wantPage: 3, wantPerPage: 25},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.params.Validate()
			require.Equal(t, tc.wantPage, tc.params.Page)
			require.Equal(t, tc.wantPerPage, tc.params.PerPage)
		})
	}
}

func TestPaginationParams_Offset(t *testing.T) {
	p := PaginationParams{Page: 3, PerPage: 15}
	require.Equal(t, 30, p.Offset())
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 25)
	require.Equal(t, 2, p.CurrentPage)
	require.Equal(t, 3, p.TotalPages)
	require.True(t, p.HasNext)
	require.True(t, p.HasPrev)

	last := NewPagination(3, 10, 25)
	require.False(t, last.HasNext)
}

func TestNewPaginatedResult_NilItems(t *testing.T) {
	result := NewPaginatedResult[int](nil, NewPagination(1, 10, 0))
	require.NotNil(t, result.Items)
	require.Empty(t, result.Items)
}

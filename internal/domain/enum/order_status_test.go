package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseOrderStatus(t *testing.T) {
	tests := []struct {
		input  string
		want   OrderStatus
		wantOK bool
	}{
		{input: "created", want: OrderStatusCreated, wantOK: true},
		{input: "completed", want: OrderStatusCompleted, wantOK: true},
		{input: "cancelled", want: OrderStatusCancelled, wantOK: true},
		{input: "shipped", wantOK: false},
		{input: "", wantOK: false},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, ok := ParseOrderStatus(tc.input)
			require.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				require.Equal(t, tc.want, got)
			}
		})
	}
}

func TestOrderStatus_JSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(OrderStatusCompleted)
	require.NoError(t, err)
	require.Equal(t, `"completed"`, string(data))

	var status OrderStatus
	require.NoError(t, json.Unmarshal([]byte(`"cancelled"`), &status))
	require.Equal(t, OrderStatusCancelled, status)

	require.NoError(t, json.Unmarshal([]byte(`1`), &status))
	require.Equal(t, OrderStatusCompleted, status)
}

package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseOrderStatus(t *testing.T) {
	testCases := []struct {
		raw     string
		want    OrderStatus
		wantErr bool
	}{
		{raw: "pending", want: OrderStatusPending},
		{raw: "Confirmed", want: OrderStatusConfirmed},
		{raw: " PREPARING ", want: OrderStatusPreparing},
		{raw: "OutForDelivery", want: OrderStatusOutForDelivery},
		{raw: "delivered", want: OrderStatusDelivered},
		{raw: "out for delivery", wantErr: true},
		{raw: "cancelled", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := ParseOrderStatus(tc.raw)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrUnknownOrderStatus)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestCheckOperatorTransition(t *testing.T) {
	testCases := []struct {
		name    string
		from    OrderStatus
		to      OrderStatus
		wantErr error
	}{
		{"confirmed to preparing", OrderStatusConfirmed, OrderStatusPreparing, nil},
		{"preparing to outfordelivery", OrderStatusPreparing, OrderStatusOutForDelivery, nil},
		{"outfordelivery to delivered", OrderStatusOutForDelivery, OrderStatusDelivered, nil},
		{"same status", OrderStatusPreparing, OrderStatusPreparing, nil},
		{"pending to confirmed", OrderStatusPending, OrderStatusConfirmed, ErrGatewayOnlyStatus},
		{"pending to preparing", OrderStatusPending, OrderStatusPreparing, ErrGatewayOnlyStatus},
		{"delivered to pending", OrderStatusDelivered, OrderStatusPending, ErrGatewayOnlyStatus},
		{"preparing to confirmed", OrderStatusPreparing, OrderStatusConfirmed, ErrGatewayOnlyStatus},
		{"delivered to preparing", OrderStatusDelivered, OrderStatusPreparing, ErrOrderStatusRegressed},
		{"confirmed to delivered", OrderStatusConfirmed, OrderStatusDelivered, ErrOrderStatusSkipped},
		{"confirmed to outfordelivery", OrderStatusConfirmed, OrderStatusOutForDelivery, ErrOrderStatusSkipped},
		{"unknown", OrderStatus("lost"), OrderStatusDelivered, ErrUnknownOrderStatus},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckOperatorTransition(tc.from, tc.to)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestOrderStatusNext(t *testing.T) {
	next, ok := OrderStatusPending.Next()
	require.True(t, ok)
	require.Equal(t, OrderStatusConfirmed, next)

	_, ok = OrderStatusDelivered.Next()
	require.False(t, ok)

	require.False(t, OrderStatusPending.IsConfirmedOrLater())
	require.True(t, OrderStatusConfirmed.IsConfirmedOrLater())
	require.True(t, OrderStatusDelivered.IsConfirmedOrLater())
	require.Len(t, OrderStatuses(), 5)
}

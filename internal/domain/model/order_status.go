package model

import (
	"errors"
	"fmt"
	"strings"
)

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusOutForDelivery OrderStatus = "outfordelivery"
	OrderStatusDelivered      OrderStatus = "delivered"
)

// 狀態固定順序
var orderStatusSequence = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusPreparing,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
}

var (
	ErrUnknownOrderStatus   = errors.New("unknown order status")
	ErrOrderStatusRegressed = errors.New("order status cannot move backwards")
	ErrOrderStatusSkipped   = errors.New("order status cannot skip a step")
	ErrGatewayOnlyStatus    = errors.New("order status is driven by payment confirmation only")
)

// ParseOrderStatus 不分大小寫, 統一轉為小寫
func ParseOrderStatus(raw string) (OrderStatus, error) {
	s := OrderStatus(strings.ToLower(strings.TrimSpace(raw)))
	if s.rank() < 0 {
		return "", fmt.Errorf("%w: %q", ErrUnknownOrderStatus, raw)
	}
	return s, nil
}

func OrderStatuses() []OrderStatus {
	out := make([]OrderStatus, len(orderStatusSequence))
	copy(out, orderStatusSequence)
	return out
}

func (s OrderStatus) rank() int {
	for i, v := range orderStatusSequence {
		if v == s {
			return i
		}
	}
	return -1
}

func (s OrderStatus) IsValid() bool {
	return s.rank() >= 0
}

// IsConfirmedOrLater 已付款確認 (含之後的狀態)
func (s OrderStatus) IsConfirmedOrLater() bool {
	return s.rank() >= OrderStatusConfirmed.rank()
}

func (s OrderStatus) Next() (OrderStatus, bool) {
	r := s.rank()
	if r < 0 || r+1 >= len(orderStatusSequence) {
		return "", false
	}
	return orderStatusSequence[r+1], true
}

// CheckOperatorTransition 餐廳操作者只能一步一步往前推進
// pending -> confirmed 只能由付款 webhook 觸發
// 相同狀態回傳 nil, 由呼叫端視為 no-op
func CheckOperatorTransition(from, to OrderStatus) error {
	if !from.IsValid() || !to.IsValid() {
		return ErrUnknownOrderStatus
	}
	if from == to {
		return nil
	}
	if from == OrderStatusPending || to == OrderStatusPending || to == OrderStatusConfirmed {
		return ErrGatewayOnlyStatus
	}
	if to.rank() < from.rank() {
		return ErrOrderStatusRegressed
	}
	if next, ok := from.Next(); !ok || next != to {
		return ErrOrderStatusSkipped
	}
	return nil
}

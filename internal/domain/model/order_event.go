package model

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	OrderCreatedEventName       EventType = "OrderCreated"
	OrderConfirmedEventName     EventType = "OrderConfirmed"
	OrderStatusChangedEventName EventType = "OrderStatusChanged"
)

// OrderEvent 寫入成功後才會發布到 kafka
type OrderEvent struct {
	EventID      string      `json:"eventId"`
	EventType    EventType   `json:"eventType"`
	OrderID      string      `json:"orderId"`
	RestaurantID string      `json:"restaurantId"`
	UserID       string      `json:"userId"`
	FromStatus   OrderStatus `json:"fromStatus,omitempty"`
	ToStatus     OrderStatus `json:"toStatus"`
	TotalAmount  int64       `json:"totalAmount"`
	Currency     string      `json:"currency"`
	CreatedAt    time.Time   `json:"createdAt"`
}

func NewOrderEvent(eventType EventType, order *Order, from OrderStatus) OrderEvent {
	return OrderEvent{
		EventID:      uuid.NewString(),
		EventType:    eventType,
		OrderID:      order.ID,
		RestaurantID: order.RestaurantID,
		UserID:       order.UserID,
		FromStatus:   from,
		ToStatus:     order.Status,
		TotalAmount:  order.TotalAmount,
		Currency:     order.Currency,
		CreatedAt:    time.Now().UTC(),
	}
}

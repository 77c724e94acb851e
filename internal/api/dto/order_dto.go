package dto

import (
	"time"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"github.com/shopspring/decimal"
)

const minorUnitExp int32 = -2

// FormatMinor 最小貨幣單位轉為顯示用字串, 例如 1300 -> "13.00"
func FormatMinor(amount int64) string {
	return decimal.New(amount, minorUnitExp).StringFixed(-minorUnitExp)
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type OrderItemDTO struct {
	MenuItemID   string `json:"menuItemId"`
	Name         string `json:"name"`
	ImageURL     string `json:"imageUrl"`
	UnitAmount   int64  `json:"unitAmount"`
	Quantity     int64  `json:"quantity"`
	LineTotal    int64  `json:"lineTotal"`
	DisplayPrice string `json:"displayPrice"`
}

type RestaurantSummaryDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	City     string `json:"city"`
	ImageURL string `json:"imageUrl"`
}

type OrderDTO struct {
	ID              string                `json:"id"`
	RestaurantID    string                `json:"restaurantId"`
	UserID          string                `json:"userId"`
	Status          string                `json:"status"`
	TotalAmount     int64                 `json:"totalAmount"`
	DisplayTotal    string                `json:"displayTotal"`
	Currency        string                `json:"currency"`
	DeliveryDetails DeliveryDetailsDTO    `json:"deliveryDetails"`
	Items           []OrderItemDTO        `json:"cartItems"`
	Restaurant      *RestaurantSummaryDTO `json:"restaurant,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
}

func NewOrderDTO(o *model.Order) OrderDTO {
	out := OrderDTO{
		ID:           o.ID,
		RestaurantID: o.RestaurantID,
		UserID:       o.UserID,
		Status:       string(o.Status),
		TotalAmount:  o.TotalAmount,
		DisplayTotal: FormatMinor(o.TotalAmount),
		Currency:     o.Currency,
		DeliveryDetails: DeliveryDetailsDTO{
			Name:    o.DeliveryDetails.Name,
			Email:   o.DeliveryDetails.Email,
			Address: o.DeliveryDetails.Address,
			City:    o.DeliveryDetails.City,
			Country: o.DeliveryDetails.Country,
			Contact: o.DeliveryDetails.Contact,
		},
		Items:     make([]OrderItemDTO, 0, len(o.Items)),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
	for _, item := range o.Items {
		out.Items = append(out.Items, OrderItemDTO{
			MenuItemID:   item.MenuItemID,
			Name:         item.Name,
			ImageURL:     item.ImageURL,
			UnitAmount:   item.UnitAmount,
			Quantity:     item.Quantity,
			LineTotal:    item.LineTotal,
			DisplayPrice: FormatMinor(item.UnitAmount),
		})
	}
	if o.Restaurant != nil {
		out.Restaurant = &RestaurantSummaryDTO{
			ID:       o.Restaurant.ID,
			Name:     o.Restaurant.Name,
			City:     o.Restaurant.City,
			ImageURL: o.Restaurant.ImageURL,
		}
	}
	return out
}

func NewOrderDTOs(orders []model.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrderDTO(&orders[i]))
	}
	return out
}

package dto

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"github.com/RoyceAzure/lab/foodorder/internal/service"
)

// Quantity 前端可能送字串或數字, 保留原始內容交給 service 轉換
type Quantity string

func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*q = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*q = Quantity(s)
	case len(data) > 0 && (data[0] == '-' || (data[0] >= '0' && data[0] <= '9')):
		*q = Quantity(data)
	default:
		return errors.New("quantity must be a number or a numeric string")
	}
	return nil
}

type DeliveryDetailsDTO struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
	Contact string `json:"contact"`
}

func (d DeliveryDetailsDTO) toModel() model.DeliveryDetails {
	return model.DeliveryDetails{
		Name:    d.Name,
		Email:   d.Email,
		Address: d.Address,
		City:    d.City,
		Country: d.Country,
		Contact: d.Contact,
	}
}

// CartItemDTO 價格欄位即使送來也不會被使用
// menuId / quantity 為舊版前端欄位名稱
type CartItemDTO struct {
	MenuItemID     string   `json:"menuItemId"`
	MenuID         string   `json:"menuId,omitempty"`
	Quantity       Quantity `json:"quantityRequested"`
	LegacyQuantity Quantity `json:"quantity,omitempty"`
}

type CheckoutSessionRequest struct {
	RestaurantID    string             `json:"restaurantId"`
	DeliveryDetails DeliveryDetailsDTO `json:"deliveryDetails"`
	CartItems       []CartItemDTO      `json:"cartItems"`
}

func (c *CheckoutSessionRequest) ToInput(userID string) service.CheckoutInput {
	in := service.CheckoutInput{
		UserID:       userID,
		RestaurantID: c.RestaurantID,
		Delivery:     c.DeliveryDetails.toModel(),
		Items:        make([]service.CheckoutLine, 0, len(c.CartItems)),
	}
	for _, item := range c.CartItems {
		menuItemID := item.MenuItemID
		if menuItemID == "" {
			menuItemID = item.MenuID
		}
		qty := item.Quantity
		if qty == "" {
			qty = item.LegacyQuantity
		}
		in.Items = append(in.Items, service.CheckoutLine{MenuItemID: menuItemID, Quantity: string(qty)})
	}
	return in
}

type CheckoutSessionResponse struct {
	RedirectURL  string `json:"redirectUrl"`
	OrderID      string `json:"orderId"`
	SessionID    string `json:"sessionId"`
	TotalAmount  int64  `json:"totalAmount"`
	DisplayTotal string `json:"displayTotal"`
	Currency     string `json:"currency"`
}

func NewCheckoutSessionResponse(res *service.CheckoutResult) CheckoutSessionResponse {
	return CheckoutSessionResponse{
		RedirectURL:  res.RedirectURL,
		OrderID:      res.OrderID,
		SessionID:    res.SessionID,
		TotalAmount:  res.TotalAmount,
		DisplayTotal: FormatMinor(res.TotalAmount),
		Currency:     res.Currency,
	}
}

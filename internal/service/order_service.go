package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/producer"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/foodorder/internal/pkg/apperr"
	"github.com/rs/zerolog"
)

type IOrderService interface {
	ListMine(ctx context.Context, userID string) ([]model.Order, error)
	GetForBuyer(ctx context.Context, orderID string, userID string) (*model.Order, error)
	ListForRestaurant(ctx context.Context, restaurantID string, userID string, rawStatus string) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID string, userID string, rawStatus string) (*model.Order, error)
}

type OrderService struct {
	orders    db.IOrderRepository
	catalog   ICatalogService
	publisher producer.IOrderEventPublisher
}

func NewOrderService(orders db.IOrderRepository, catalog ICatalogService, publisher producer.IOrderEventPublisher) IOrderService {
	if publisher == nil {
		publisher = producer.NopPublisher{}
	}
	return &OrderService{
		orders:    orders,
		catalog:   catalog,
		publisher: publisher,
	}
}

func (o *OrderService) ListMine(ctx context.Context, userID string) ([]model.Order, error) {
	orders, err := o.orders.GetOrdersByUserID(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "list orders", err)
	}
	return orders, nil
}

func (o *OrderService) getOrder(ctx context.Context, orderID string) (*model.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, apperr.New(apperr.ValidationError, "order id is required")
	}
	order, err := o.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, apperr.Newf(apperr.NotFound, "order %s not found", orderID)
		}
		return nil, apperr.Wrap(apperr.Internal, "load order", err)
	}
	return order, nil
}

// GetForBuyer 下單者查詢自己的訂單, 付款完成導回頁面會輪詢這裡
func (o *OrderService) GetForBuyer(ctx context.Context, orderID string, userID string) (*model.Order, error) {
	order, err := o.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, apperr.New(apperr.Forbidden, "order belongs to another user")
	}
	return order, nil
}

// invalidStatusErr 訊息列出所有可用的狀態值
func invalidStatusErr(err error) error {
	statuses := model.OrderStatuses()
	names := make([]string, 0, len(statuses))
	for _, st := range statuses {
		names = append(names, string(st))
	}
	return apperr.Wrap(apperr.InvalidStatus, "status must be one of "+strings.Join(names, ", "), err)
}

func parseStatusFilter(raw string) (model.OrderStatus, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	status, err := model.ParseOrderStatus(raw)
	if err != nil {
		return "", invalidStatusErr(err)
	}
	return status, nil
}

func (o *OrderService) ListForRestaurant(ctx context.Context, restaurantID string, userID string, rawStatus string) ([]model.Order, error) {
	status, err := parseStatusFilter(rawStatus)
	if err != nil {
		return nil, err
	}
	if _, err := o.catalog.GetOwnedRestaurant(ctx, restaurantID, userID); err != nil {
		return nil, err
	}
	orders, err := o.orders.GetOrdersByRestaurantID(ctx, restaurantID, status)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "list restaurant orders", err)
	}
	return orders, nil
}

/*
UpdateStatus 檢查順序: 狀態值 -> 訂單存在 -> 餐廳擁有者 -> 狀態轉換
寫入以目前狀態為條件, 並發時只有一個請求會成功
*/
func (o *OrderService) UpdateStatus(ctx context.Context, orderID string, userID string, rawStatus string) (*model.Order, error) {
	to, err := model.ParseOrderStatus(rawStatus)
	if err != nil {
		return nil, invalidStatusErr(err)
	}

	order, err := o.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Restaurant == nil || order.Restaurant.ID != order.RestaurantID {
		restaurant, err := o.catalog.GetRestaurant(ctx, order.RestaurantID)
		if err != nil {
			return nil, err
		}
		order.Restaurant = restaurant
	}
	if !order.Restaurant.IsOwnedBy(userID) {
		return nil, apperr.New(apperr.Forbidden, "order belongs to another restaurant")
	}

	from := order.Status
	if err := model.CheckOperatorTransition(from, to); err != nil {
		return nil, apperr.Wrap(apperr.InvalidTransition, "cannot move order from "+string(from)+" to "+string(to), err)
	}
	if from == to {
		return order, nil
	}

	ok, err := o.orders.AdvanceOrderStatus(ctx, order.ID, from, to)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "update order status", err)
	}
	if !ok {
		current, err := o.getOrder(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		return nil, apperr.Newf(apperr.InvalidTransition, "order status changed concurrently, now %s", current.Status)
	}

	order.Status = to
	order.UpdatedAt = time.Now().UTC()
	zerolog.Ctx(ctx).Info().
		Str("order_id", order.ID).
		Str("from", string(from)).
		Str("to", string(to)).
		Msg("order status updated")
	publishOrderEvent(ctx, o.publisher, model.NewOrderEvent(model.OrderStatusChangedEventName, order, from))
	return order, nil
}

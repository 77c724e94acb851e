package db

import (
	"context"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"gorm.io/gorm"
)

type OrderRepo struct {
	db *DbDao
}

func NewOrderRepo(db *DbDao) *OrderRepo {
	return &OrderRepo{db: db}
}

// CreateOrder 訂單與品項同一個 transaction 寫入
func (s *OrderRepo) CreateOrder(ctx context.Context, order *model.Order) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Restaurant").Create(order).Error
	})
}

func (s *OrderRepo) GetOrderByID(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Preload("Restaurant").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, mapErr(err)
	}
	return &order, nil
}

// GetOrdersByUserID 新的在前
func (s *OrderRepo) GetOrdersByUserID(ctx context.Context, userID string) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Preload("Restaurant").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	return orders, err
}

// GetOrdersByRestaurantID status 為空字串時不過濾
func (s *OrderRepo) GetOrdersByRestaurantID(ctx context.Context, restaurantID string, status model.OrderStatus) ([]model.Order, error) {
	var orders []model.Order
	q := s.db.WithContext(ctx).
		Preload("Items").
		Where("restaurant_id = ?", restaurantID)
	if status != "" {
		q = q.Where("status = ?", string(status))
	}
	err := q.Order("created_at DESC, id DESC").Find(&orders).Error
	return orders, err
}

func (s *OrderRepo) SetPaymentSession(ctx context.Context, orderID string, sessionID string) error {
	res := s.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("payment_session_id", sessionID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ConfirmPendingOrder 只有 pending 的訂單會被更新, 回傳是否由這次呼叫完成確認
// amount 為 0 時保留下單時計算的金額
func (s *OrderRepo) ConfirmPendingOrder(ctx context.Context, orderID string, amount int64, eventID string, sessionID string) (bool, error) {
	updates := map[string]any{
		"status":           string(model.OrderStatusConfirmed),
		"payment_event_id": eventID,
	}
	if amount > 0 {
		updates["total_amount"] = amount
	}
	if sessionID != "" {
		updates["payment_session_id"] = sessionID
	}

	res := s.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ? AND status = ?", orderID, string(model.OrderStatusPending)).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// AdvanceOrderStatus 條件更新, 目前狀態不是 from 時不會寫入
func (s *OrderRepo) AdvanceOrderStatus(ctx context.Context, orderID string, from, to model.OrderStatus) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ? AND status = ?", orderID, string(from)).
		Update("status", string(to))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

package db

import (
	"context"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"gorm.io/gorm"
)

// IRestaurantRepository 餐廳與菜單, 目錄資料只讀, 只有種子資料會寫入
type IRestaurantRepository interface {
	GetRestaurantByID(ctx context.Context, id string) (*model.Restaurant, error)
	ListRestaurantsByOwner(ctx context.Context, ownerUserID string) ([]model.Restaurant, error)
	UpsertRestaurant(ctx context.Context, restaurant *model.Restaurant) error
}

// IOrderRepository 訂單狀態的改變都必須是條件更新
type IOrderRepository interface {
	CreateOrder(ctx context.Context, order *model.Order) error
	GetOrderByID(ctx context.Context, id string) (*model.Order, error)
	GetOrdersByUserID(ctx context.Context, userID string) ([]model.Order, error)
	GetOrdersByRestaurantID(ctx context.Context, restaurantID string, status model.OrderStatus) ([]model.Order, error)
	SetPaymentSession(ctx context.Context, orderID string, sessionID string) error
	ConfirmPendingOrder(ctx context.Context, orderID string, amount int64, eventID string, sessionID string) (bool, error)
	AdvanceOrderStatus(ctx context.Context, orderID string, from, to model.OrderStatus) (bool, error)
}

// UnifiedDBImpl 統一資料庫實現
type UnifiedDBImpl struct {
	db    *gorm.DB
	dbDao *DbDao
	*RestaurantRepo
	*OrderRepo
}

func NewUnifiedDB(db *gorm.DB) *UnifiedDBImpl {
	dbDao := NewDbDao(db)
	return &UnifiedDBImpl{
		db:             db,
		dbDao:          dbDao,
		RestaurantRepo: NewRestaurantRepo(dbDao),
		OrderRepo:      NewOrderRepo(dbDao),
	}
}

func (u *UnifiedDBImpl) InitMigrate() error {
	return u.dbDao.InitMigrate()
}

func (u *UnifiedDBImpl) GetDB() *gorm.DB {
	return u.db
}

// Ping 健康檢查使用
func (u *UnifiedDBImpl) Ping(ctx context.Context) error {
	sqlDB, err := u.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (u *UnifiedDBImpl) Close() error {
	sqlDB, err := u.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var (
	_ IRestaurantRepository = (*UnifiedDBImpl)(nil)
	_ IOrderRepository      = (*UnifiedDBImpl)(nil)
)

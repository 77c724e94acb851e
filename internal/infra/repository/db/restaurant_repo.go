package db

import (
	"context"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RestaurantRepo struct {
	db *DbDao
}

func NewRestaurantRepo(db *DbDao) *RestaurantRepo {
	return &RestaurantRepo{db: db}
}

func menusInOrder(db *gorm.DB) *gorm.DB {
	return db.Order("menu_items.created_at ASC, menu_items.id ASC")
}

// GetRestaurantByID 連同菜單一起載入
func (s *RestaurantRepo) GetRestaurantByID(ctx context.Context, id string) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	err := s.db.WithContext(ctx).
		Preload("Menus", menusInOrder).
		Where("id = ?", id).
		First(&restaurant).Error
	if err != nil {
		return nil, mapErr(err)
	}
	return &restaurant, nil
}

func (s *RestaurantRepo) ListRestaurantsByOwner(ctx context.Context, ownerUserID string) ([]model.Restaurant, error) {
	var restaurants []model.Restaurant
	err := s.db.WithContext(ctx).
		Where("owner_user_id = ?", ownerUserID).
		Order("created_at ASC").
		Find(&restaurants).Error
	return restaurants, err
}

// UpsertRestaurant 用於種子資料, 重複執行結果相同
func (s *RestaurantRepo) UpsertRestaurant(ctx context.Context, restaurant *model.Restaurant) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		menus := restaurant.Menus
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"owner_user_id", "name", "city", "country", "cuisines", "delivery_time_minutes", "image_url", "updated_at"}),
		}).Omit("Menus").Create(restaurant).Error
		if err != nil {
			return err
		}

		for i := range menus {
			menus[i].RestaurantID = restaurant.ID
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"restaurant_id", "name", "description", "price_minor", "image_url", "updated_at"}),
			}).Create(&menus[i]).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

package service

import (
	"context"
	"errors"
	"strings"

	"github.com/RoyceAzure/lab/foodorder/internal/config"
	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/foodorder/internal/pkg/apperr"
	"github.com/rs/zerolog"
)

type ICatalogService interface {
	GetRestaurant(ctx context.Context, restaurantID string) (*model.Restaurant, error)
	GetOwnedRestaurant(ctx context.Context, restaurantID string, userID string) (*model.Restaurant, error)
	ListOwnedRestaurants(ctx context.Context, userID string) ([]model.Restaurant, error)
	SeedCatalog(ctx context.Context, seed *config.CatalogSeed) error
}

type CatalogService struct {
	restaurants db.IRestaurantRepository
}

func NewCatalogService(restaurants db.IRestaurantRepository) ICatalogService {
	return &CatalogService{
		restaurants: restaurants,
	}
}

func (c *CatalogService) GetRestaurant(ctx context.Context, restaurantID string) (*model.Restaurant, error) {
	if strings.TrimSpace(restaurantID) == "" {
		return nil, apperr.New(apperr.ValidationError, "restaurant id is required")
	}
	restaurant, err := c.restaurants.GetRestaurantByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, apperr.Newf(apperr.NotFound, "restaurant %s not found", restaurantID)
		}
		return nil, apperr.Wrap(apperr.Internal, "load restaurant", err)
	}
	return restaurant, nil
}

// GetOwnedRestaurant 只有餐廳擁有者可以取得
func (c *CatalogService) GetOwnedRestaurant(ctx context.Context, restaurantID string, userID string) (*model.Restaurant, error) {
	restaurant, err := c.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if !restaurant.IsOwnedBy(userID) {
		return nil, apperr.New(apperr.Forbidden, "restaurant belongs to another operator")
	}
	return restaurant, nil
}

// ListOwnedRestaurants 餐廳擁有者選擇要處理哪間餐廳的訂單
func (c *CatalogService) ListOwnedRestaurants(ctx context.Context, userID string) ([]model.Restaurant, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperr.New(apperr.Unauthenticated, "caller identity is required")
	}
	restaurants, err := c.restaurants.ListRestaurantsByOwner(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "list restaurants", err)
	}
	return restaurants, nil
}

// SeedCatalog 開機時寫入種子資料, 可重複執行
func (c *CatalogService) SeedCatalog(ctx context.Context, seed *config.CatalogSeed) error {
	if seed == nil {
		return nil
	}
	for _, r := range seed.Restaurants {
		restaurant := &model.Restaurant{
			ID:                  r.ID,
			OwnerUserID:         r.OwnerUserID,
			Name:                r.Name,
			City:                r.City,
			Country:             r.Country,
			Cuisines:            strings.Join(r.Cuisines, ","),
			DeliveryTimeMinutes: r.DeliveryTimeMinutes,
			ImageURL:            r.ImageURL,
		}
		for _, m := range r.Menus {
			restaurant.Menus = append(restaurant.Menus, model.MenuItem{
				ID:           m.ID,
				RestaurantID: r.ID,
				Name:         m.Name,
				Description:  m.Description,
				PriceMinor:   m.PriceMinor,
				ImageURL:     m.ImageURL,
			})
		}
		if err := c.restaurants.UpsertRestaurant(ctx, restaurant); err != nil {
			return err
		}
		zerolog.Ctx(ctx).Info().
			Str("restaurant_id", r.ID).
			Int("menus", len(r.Menus)).
			Msg("catalog seeded")
	}
	return nil
}

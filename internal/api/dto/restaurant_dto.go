package dto

import (
	"strings"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
)

type MenuItemDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	PriceMinor   int64  `json:"priceMinor"`
	DisplayPrice string `json:"displayPrice"`
	ImageURL     string `json:"imageUrl"`
}

type RestaurantDTO struct {
	ID                  string        `json:"id"`
	Name                string        `json:"name"`
	City                string        `json:"city"`
	Country             string        `json:"country"`
	Cuisines            []string      `json:"cuisines"`
	DeliveryTimeMinutes int           `json:"deliveryTime"`
	ImageURL            string        `json:"imageUrl"`
	Menus               []MenuItemDTO `json:"menus"`
}

func NewRestaurantDTO(r *model.Restaurant) RestaurantDTO {
	out := RestaurantDTO{
		ID:                  r.ID,
		Name:                r.Name,
		City:                r.City,
		Country:             r.Country,
		Cuisines:            []string{},
		DeliveryTimeMinutes: r.DeliveryTimeMinutes,
		ImageURL:            r.ImageURL,
		Menus:               make([]MenuItemDTO, 0, len(r.Menus)),
	}
	for _, c := range strings.Split(r.Cuisines, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out.Cuisines = append(out.Cuisines, c)
		}
	}
	for _, m := range r.Menus {
		out.Menus = append(out.Menus, MenuItemDTO{
			ID:           m.ID,
			Name:         m.Name,
			Description:  m.Description,
			PriceMinor:   m.PriceMinor,
			DisplayPrice: FormatMinor(m.PriceMinor),
			ImageURL:     m.ImageURL,
		})
	}
	return out
}

func NewRestaurantDTOs(restaurants []model.Restaurant) []RestaurantDTO {
	out := make([]RestaurantDTO, 0, len(restaurants))
	for i := range restaurants {
		out = append(out, NewRestaurantDTO(&restaurants[i]))
	}
	return out
}

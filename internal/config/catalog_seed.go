package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type SeedMenuItem struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	PriceMinor  int64  `yaml:"price_minor"`
	ImageURL    string `yaml:"image_url"`
}

type SeedRestaurant struct {
	ID                  string         `yaml:"id"`
	OwnerUserID         string         `yaml:"owner_user_id"`
	Name                string         `yaml:"name"`
	City                string         `yaml:"city"`
	Country             string         `yaml:"country"`
	Cuisines            []string       `yaml:"cuisines"`
	DeliveryTimeMinutes int            `yaml:"delivery_time_minutes"`
	ImageURL            string         `yaml:"image_url"`
	Menus               []SeedMenuItem `yaml:"menus"`
}

type CatalogSeed struct {
	Restaurants []SeedRestaurant `yaml:"restaurants"`
}

// LoadCatalogSeed 讀取餐廳與菜單初始資料
func LoadCatalogSeed(path string) (*CatalogSeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	seed := &CatalogSeed{}
	if err := yaml.Unmarshal(data, seed); err != nil {
		return nil, err
	}

	for _, r := range seed.Restaurants {
		if r.ID == "" || r.OwnerUserID == "" {
			return nil, fmt.Errorf("restaurant %q: id and owner_user_id are required", r.Name)
		}
		for _, m := range r.Menus {
			if m.ID == "" || m.PriceMinor <= 0 {
				return nil, fmt.Errorf("restaurant %s menu %q: id and positive price_minor are required", r.ID, m.Name)
			}
		}
	}
	return seed, nil
}

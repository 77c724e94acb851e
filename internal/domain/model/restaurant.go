package model

type Restaurant struct {
	ID                  string     `gorm:"primaryKey;type:varchar(64)" json:"id"`
	OwnerUserID         string     `gorm:"not null;type:varchar(64);index" json:"ownerUserId"`
	Name                string     `gorm:"not null;type:varchar(255)" json:"name"`
	City                string     `gorm:"not null;type:varchar(100)" json:"city"`
	Country             string     `gorm:"not null;type:varchar(100)" json:"country"`
	Cuisines            string     `gorm:"not null;type:varchar(255);default:''" json:"cuisines"`
	DeliveryTimeMinutes int        `gorm:"not null;default:0" json:"deliveryTimeMinutes"`
	ImageURL            string     `gorm:"not null;type:text;default:''" json:"imageUrl"`
	Menus               []MenuItem `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE" json:"menus"`
	BaseModel
}

// MenuItem 價格以最小貨幣單位儲存
type MenuItem struct {
	ID           string `gorm:"primaryKey;type:varchar(64)" json:"id"`
	RestaurantID string `gorm:"not null;type:varchar(64);index" json:"restaurantId"`
	Name         string `gorm:"not null;type:varchar(255)" json:"name"`
	Description  string `gorm:"not null;type:text;default:''" json:"description"`
	PriceMinor   int64  `gorm:"not null" json:"priceMinor"`
	ImageURL     string `gorm:"not null;type:text;default:''" json:"imageUrl"`
	BaseModel
}

// FindMenuItem 在已載入的菜單中找品項
func (r *Restaurant) FindMenuItem(menuItemID string) (*MenuItem, bool) {
	for i := range r.Menus {
		if r.Menus[i].ID == menuItemID {
			return &r.Menus[i], true
		}
	}
	return nil, false
}

func (r *Restaurant) IsOwnedBy(userID string) bool {
	return userID != "" && r.OwnerUserID == userID
}

package model

type DeliveryDetails struct {
	Name    string `gorm:"type:varchar(255)" json:"name"`
	Email   string `gorm:"type:varchar(255)" json:"email"`
	Address string `gorm:"type:text" json:"address"`
	City    string `gorm:"type:varchar(100)" json:"city"`
	Country string `gorm:"type:varchar(100)" json:"country"`
	Contact string `gorm:"type:varchar(50)" json:"contact"`
}

// Order 金額皆為最小貨幣單位
// 只會被兩條路徑修改: webhook (pending -> confirmed) 與餐廳操作者推進狀態
type Order struct {
	ID               string          `gorm:"primaryKey;type:varchar(64)" json:"id"`
	RestaurantID     string          `gorm:"not null;type:varchar(64);index" json:"restaurantId"`
	UserID           string          `gorm:"not null;type:varchar(64);index" json:"userId"`
	DeliveryDetails  DeliveryDetails `gorm:"embedded;embeddedPrefix:delivery_" json:"deliveryDetails"`
	Items            []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount      int64           `gorm:"not null" json:"totalAmount"`
	Currency         string          `gorm:"not null;type:varchar(8)" json:"currency"`
	Status           OrderStatus     `gorm:"not null;type:varchar(32);index;default:'pending'" json:"status"`
	PaymentSessionID string          `gorm:"type:varchar(255);default:''" json:"paymentSessionId"`
	PaymentEventID   string          `gorm:"type:varchar(255);default:''" json:"paymentEventId"`
	Restaurant       *Restaurant     `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`
	BaseModel
}

// OrderItem 下單當下由菜單解析出的品項快照
type OrderItem struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID    string `gorm:"not null;type:varchar(64);index" json:"orderId"`
	MenuItemID string `gorm:"not null;type:varchar(64)" json:"menuItemId"`
	Name       string `gorm:"not null;type:varchar(255)" json:"name"`
	ImageURL   string `gorm:"not null;type:text;default:''" json:"imageUrl"`
	UnitAmount int64  `gorm:"not null" json:"unitAmount"`
	Quantity   int64  `gorm:"not null" json:"quantity"`
	LineTotal  int64  `gorm:"not null" json:"lineTotal"`
}

func SumLineTotals(items []OrderItem) int64 {
	var total int64
	for _, item := range items {
		total += item.LineTotal
	}
	return total
}

package model

import (
	"time"
)

// 訂單不刪除, 不使用軟刪除欄位
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

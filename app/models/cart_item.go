package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartItem references its product generically by type and id, the same shape
// the order line copies at checkout.
type CartItem struct {
	ID          string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	CartID      string `gorm:"size:36;not null;index"`
	Cart        *Cart  `gorm:"foreignKey:CartID"`
	ProductType string `gorm:"size:50;not null"`
	ProductID   string `gorm:"size:36;not null;index"`
	Quantity    int    `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ci *CartItem) BeforeCreate(tx *gorm.DB) (err error) {
	if ci.ID == "" {
		ci.ID = uuid.New().String()
	}
	return
}

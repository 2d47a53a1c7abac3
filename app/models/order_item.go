package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderItem is one line of an order. The product reference is generic
// (type + id), copied verbatim from the cart line; there is no foreign key
// into a single product table.
type OrderItem struct {
	ID          string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	OrderID     string `gorm:"size:36;not null;index"`
	Order       Order  `gorm:"foreignKey:OrderID"`
	ProductType string `gorm:"size:50;not null"`
	ProductID   string `gorm:"size:36;not null;index"`
	Quantity    int    `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if oi.ID == "" {
		oi.ID = uuid.New().String()
	}
	return
}

package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	PaidStatusWaiting = "WAITING"
	PaidStatusPaid    = "PAID"
)

// Order is the checkout snapshot for one payment attempt. TotalAmount is
// fixed at creation from the cart; only PaidStatus changes afterwards.
type Order struct {
	ID         string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	UserID     string `gorm:"size:36;not null;index"`
	User       User   `gorm:"foreignKey:UserID"`
	FactorCode string `gorm:"size:50;not null;uniqueIndex"`
	PaidStatus string `gorm:"size:20;not null;default:'WAITING'"`

	TotalAmount decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	OrderItems  []OrderItem

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (o Order) IsPaid() bool {
	return o.PaidStatus == PaidStatusPaid
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	if o.FactorCode == "" {
		o.FactorCode = NewFactorCode()
	}
	return
}

// NewFactorCode builds the human-readable order reference embedded in
// payment descriptions.
func NewFactorCode() string {
	return fmt.Sprintf("INV-%s-%s", time.Now().Format("20060102"), uuid.New().String()[:8])
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sinashm/go-shop/app/utils/derive"
	"gorm.io/gorm"
)

type Product struct {
	ID          string          `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name        string          `gorm:"size:255;not null"`
	Slug        string          `gorm:"size:255;not null;uniqueIndex"`
	Description string          `gorm:"type:text"`
	Sku         string          `gorm:"size:100;uniqueIndex"`
	Price       decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	OfferPrice  decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	Stock       int             `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// ProductTypeProduct is the generic reference name cart and order lines use
// for rows of this table.
const ProductTypeProduct = "product"

func (p *Product) BeforeSave(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Slug == "" {
		p.Slug = derive.Slug(p.Name)
	}
	if p.OfferPrice.IsZero() {
		p.OfferPrice = p.Price
	}
	return
}

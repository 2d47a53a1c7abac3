package migrations

import (
	"github.com/sinashm/go-shop/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.BlogCategory{},
		&models.Tag{},
		&models.BlogPost{},
		&models.Comment{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	)
}

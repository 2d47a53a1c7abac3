package repositories

import (
	"context"
	"errors"

	"github.com/sinashm/go-shop/app/models"
	"gorm.io/gorm"
)

type CartRepository interface {
	// GetByUserID loads the user's cart with its items, or (nil, nil) when
	// the user has none.
	GetByUserID(ctx context.Context, userID string) (*models.Cart, error)
	FirstOrCreateByUserID(ctx context.Context, userID string) (*models.Cart, error)
	AddItem(ctx context.Context, cartID, productType, productID string, quantity int) error
	RemoveItem(ctx context.Context, cartID, itemID string) error
	// Delete removes the cart and every item in it.
	Delete(ctx context.Context, cartID string) error
	GetItemCount(ctx context.Context, userID string) (int, error)
}

type gormCartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &gormCartRepository{db: db}
}

func (r *gormCartRepository) GetByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("CartItems").
		First(&cart, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

func (r *gormCartRepository) FirstOrCreateByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).FirstOrCreate(&cart, models.Cart{UserID: userID}).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *gormCartRepository) AddItem(ctx context.Context, cartID, productType, productID string, quantity int) error {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		First(&item, "cart_id = ? AND product_type = ? AND product_id = ?", cartID, productType, productID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		item = models.CartItem{
			CartID:      cartID,
			ProductType: productType,
			ProductID:   productID,
			Quantity:    quantity,
		}
		return r.db.WithContext(ctx).Create(&item).Error
	}
	if err != nil {
		return err
	}

	item.Quantity += quantity
	return r.db.WithContext(ctx).Save(&item).Error
}

func (r *gormCartRepository) RemoveItem(ctx context.Context, cartID, itemID string) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ? AND id = ?", cartID, itemID).
		Delete(&models.CartItem{}).Error
}

func (r *gormCartRepository) Delete(ctx context.Context, cartID string) error {
	if err := r.db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&models.Cart{}, "id = ?", cartID).Error
}

func (r *gormCartRepository) GetItemCount(ctx context.Context, userID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("cart_items").
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("carts.user_id = ?", userID).
		Count(&count).Error
	return int(count), err
}

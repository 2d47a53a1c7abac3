package repositories

import (
	"context"
	"errors"

	"github.com/sinashm/go-shop/app/models"
	"gorm.io/gorm"
)

type OrderItemRepository interface {
	BulkCreate(ctx context.Context, items []models.OrderItem) error
	// FindByIDForUser loads an order item only when its order belongs to the
	// given user; (nil, nil) otherwise.
	FindByIDForUser(ctx context.Context, itemID, userID string) (*models.OrderItem, error)
	Delete(ctx context.Context, itemID string) error
	CountByOrderID(ctx context.Context, orderID string) (int, error)
}

type gormOrderItemRepository struct {
	db *gorm.DB
}

func NewOrderItemRepository(db *gorm.DB) OrderItemRepository {
	return &gormOrderItemRepository{db: db}
}

func (r *gormOrderItemRepository) BulkCreate(ctx context.Context, items []models.OrderItem) error {
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *gormOrderItemRepository) FindByIDForUser(ctx context.Context, itemID, userID string) (*models.OrderItem, error) {
	var item models.OrderItem
	err := r.db.WithContext(ctx).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("order_items.id = ? AND orders.user_id = ?", itemID, userID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *gormOrderItemRepository) Delete(ctx context.Context, itemID string) error {
	return r.db.WithContext(ctx).Delete(&models.OrderItem{}, "id = ?", itemID).Error
}

func (r *gormOrderItemRepository) CountByOrderID(ctx context.Context, orderID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Where("order_id = ?", orderID).
		Count(&count).Error
	return int(count), err
}

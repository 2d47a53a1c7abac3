package repositories

import (
	"context"

	"github.com/sinashm/go-shop/app/models"
	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	CountActiveByPost(ctx context.Context, blogPostID string) (int, error)
}

type gormCommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &gormCommentRepository{db: db}
}

func (r *gormCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *gormCommentRepository) CountActiveByPost(ctx context.Context, blogPostID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("blog_post_id = ? AND active = ?", blogPostID, true).
		Count(&count).Error
	return int(count), err
}

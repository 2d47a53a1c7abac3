package repositories

import (
	"context"
	"errors"

	"github.com/sinashm/go-shop/app/models"
	"gorm.io/gorm"
)

type BlogCategoryRepository interface {
	FirstOrCreateByType(ctx context.Context, categoryType string) (*models.BlogCategory, error)
	FindBySlug(ctx context.Context, slug string) (*models.BlogCategory, error)
	FindAll(ctx context.Context) ([]models.BlogCategory, error)
}

type gormBlogCategoryRepository struct {
	db *gorm.DB
}

func NewBlogCategoryRepository(db *gorm.DB) BlogCategoryRepository {
	return &gormBlogCategoryRepository{db: db}
}

func (r *gormBlogCategoryRepository) FirstOrCreateByType(ctx context.Context, categoryType string) (*models.BlogCategory, error) {
	var category models.BlogCategory
	err := r.db.WithContext(ctx).FirstOrCreate(&category, models.BlogCategory{Type: categoryType}).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *gormBlogCategoryRepository) FindBySlug(ctx context.Context, slug string) (*models.BlogCategory, error) {
	var category models.BlogCategory
	err := r.db.WithContext(ctx).First(&category, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *gormBlogCategoryRepository) FindAll(ctx context.Context) ([]models.BlogCategory, error) {
	var categories []models.BlogCategory
	err := r.db.WithContext(ctx).Order("slug").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

type TagRepository interface {
	FirstOrCreateByName(ctx context.Context, name string) (*models.Tag, error)
	FindBySlug(ctx context.Context, slug string) (*models.Tag, error)
	FindAll(ctx context.Context) ([]models.Tag, error)
}

type gormTagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &gormTagRepository{db: db}
}

func (r *gormTagRepository) FirstOrCreateByName(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.WithContext(ctx).FirstOrCreate(&tag, models.Tag{Name: name}).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *gormTagRepository) FindBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.WithContext(ctx).First(&tag, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

func (r *gormTagRepository) FindAll(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.WithContext(ctx).Order("name").Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

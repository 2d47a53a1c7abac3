package repositories

import (
	"context"
	"errors"

	"github.com/sinashm/go-shop/app/models"
	"gorm.io/gorm"
)

type BlogPostRepository interface {
	Create(ctx context.Context, post *models.BlogPost) error
	// FindPublished lists published posts newest first, optionally narrowed
	// to a category or tag slug.
	FindPublished(ctx context.Context, categorySlug, tagSlug string) ([]models.BlogPost, error)
	// FindPublishedBySlug loads one published post with its category, tags
	// and approved comments.
	FindPublishedBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
}

type gormBlogPostRepository struct {
	db *gorm.DB
}

func NewBlogPostRepository(db *gorm.DB) BlogPostRepository {
	return &gormBlogPostRepository{db: db}
}

func (r *gormBlogPostRepository) Create(ctx context.Context, post *models.BlogPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *gormBlogPostRepository) FindPublished(ctx context.Context, categorySlug, tagSlug string) ([]models.BlogPost, error) {
	query := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Tags").
		Where("blog_posts.published = ?", true)

	if categorySlug != "" {
		query = query.
			Joins("JOIN blog_categories ON blog_categories.id = blog_posts.category_id").
			Where("blog_categories.slug = ?", categorySlug)
	}

	if tagSlug != "" {
		query = query.
			Joins("JOIN blog_post_tags ON blog_post_tags.blog_post_id = blog_posts.id").
			Joins("JOIN tags ON tags.id = blog_post_tags.tag_id").
			Where("tags.slug = ?", tagSlug)
	}

	var posts []models.BlogPost
	err := query.Order("blog_posts.created_at DESC").Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *gormBlogPostRepository) FindPublishedBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Tags").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Where("active = ?", true).Order("comments.created_at DESC")
		}).
		Preload("Comments.User").
		First(&post, "slug = ? AND published = ?", slug, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

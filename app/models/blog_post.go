package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/sinashm/go-shop/app/utils/derive"
	"gorm.io/gorm"
)

type BlogPost struct {
	ID         string        `gorm:"size:36;not null;uniqueIndex;primary_key"`
	CategoryID *string       `gorm:"size:36;index"`
	Category   *BlogCategory `gorm:"foreignKey:CategoryID"`
	Tags       []Tag         `gorm:"many2many:blog_post_tags;"`

	Title   string `gorm:"size:200;not null"`
	Slug    string `gorm:"size:255;not null;uniqueIndex"`
	Content string `gorm:"type:longtext"`

	MetaTitle       string `gorm:"size:60"`
	MetaDescription string `gorm:"type:text"`
	MetaKeywords    string `gorm:"type:text"`
	Image           string `gorm:"size:255"`
	Author          string `gorm:"size:100"`
	Published       bool   `gorm:"default:false;index:idx_blog_posts_published_created"`

	Excerpt     string `gorm:"type:text"`
	ReadingTime int    `gorm:"default:1"`

	Comments []Comment `gorm:"foreignKey:BlogPostID"`

	CreatedAt time.Time `gorm:"index:idx_blog_posts_published_created,sort:desc"`
	UpdatedAt time.Time
}

// BeforeSave derives the fields an editor left blank. Slug, meta title and
// excerpt are computed once; reading time follows the content on every save.
func (p *BlogPost) BeforeSave(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Slug == "" {
		p.Slug = derive.Slug(p.Title)
	}
	if p.MetaTitle == "" {
		p.MetaTitle = derive.MetaTitle(p.Title)
	}
	if p.Excerpt == "" {
		p.Excerpt = derive.Excerpt(p.Content)
	}
	p.ReadingTime = derive.ReadingTime(p.Content)
	return
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/sinashm/go-shop/app/utils/derive"
	"gorm.io/gorm"
)

type Comment struct {
	ID         string   `gorm:"size:36;not null;uniqueIndex;primary_key"`
	BlogPostID string   `gorm:"size:36;not null;index"`
	BlogPost   BlogPost `gorm:"foreignKey:BlogPostID"`
	UserID     string   `gorm:"size:36;not null;index"`
	User       User     `gorm:"foreignKey:UserID"`

	Content string `gorm:"type:text;not null"`

	// Comments stay hidden until a moderator flips Active.
	Active bool `gorm:"default:false;index"`

	CreatedAt time.Time
}

// BeforeSave strips every piece of markup out of the content so nothing a
// visitor typed can reach a template as HTML.
func (c *Comment) BeforeSave(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.Content = derive.SanitizeComment(c.Content)
	return
}

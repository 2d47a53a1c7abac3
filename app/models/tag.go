package models

import (
	"github.com/google/uuid"
	"github.com/sinashm/go-shop/app/utils/derive"
	"gorm.io/gorm"
)

type Tag struct {
	ID   string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name string `gorm:"size:100;not null;uniqueIndex"`
	Slug string `gorm:"size:255;not null;uniqueIndex"`

	Posts []BlogPost `gorm:"many2many:blog_post_tags;"`
}

func (t *Tag) BeforeSave(tx *gorm.DB) (err error) {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Slug == "" {
		t.Slug = derive.Slug(t.Name)
	}
	return
}

package models

import (
	"github.com/google/uuid"
	"github.com/sinashm/go-shop/app/utils/derive"
	"gorm.io/gorm"
)

// Category kinds are a fixed set; the admin picks one, it is never free text.
const (
	CategoryTypeTutorials     = "tutorials"
	CategoryTypeNews          = "news"
	CategoryTypeWorkshop      = "workshop"
	CategoryTypeProductVideos = "product_videos"
)

// CategoryTypeLabels maps each kind to its Persian display name.
var CategoryTypeLabels = map[string]string{
	CategoryTypeTutorials:     "آموزشی",
	CategoryTypeNews:          "اخبار",
	CategoryTypeWorkshop:      "فعالیت های مجموعه",
	CategoryTypeProductVideos: "معرفی محصولات",
}

type BlogCategory struct {
	ID   string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Type string `gorm:"size:30;not null;uniqueIndex"`
	Slug string `gorm:"size:255;not null;uniqueIndex"`

	Posts []BlogPost `gorm:"foreignKey:CategoryID"`
}

func (c BlogCategory) Label() string {
	if label, ok := CategoryTypeLabels[c.Type]; ok {
		return label
	}
	return c.Type
}

func (c *BlogCategory) BeforeSave(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Slug == "" {
		c.Slug = derive.Slug(c.Type)
	}
	return
}

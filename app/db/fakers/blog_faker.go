package fakers

import (
	"github.com/go-faker/faker/v4"
	"github.com/sinashm/go-shop/app/models"
)

func BlogPostFaker(category *models.BlogCategory, tags []models.Tag) *models.BlogPost {
	return &models.BlogPost{
		CategoryID: &category.ID,
		Tags:       tags,
		Title:      faker.Sentence(),
		Content:    "<p>" + faker.Paragraph() + "</p><p>" + faker.Paragraph() + "</p>",
		Author:     faker.Name(),
		Published:  true,
	}
}

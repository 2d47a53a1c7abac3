package fakers

import (
	"math/rand"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"github.com/sinashm/go-shop/app/models"
)

func ProductFaker() *models.Product {
	name := faker.Name()
	price := decimal.NewFromInt(int64(rand.Intn(900)+100) * 1000)

	// Offer price sits somewhere below the list price.
	offerPrice := price.Mul(decimal.NewFromFloat(0.8 + rand.Float64()*0.2)).Round(0)

	return &models.Product{
		Name:        name,
		Slug:        slug.Make(name + "-" + uuid.NewString()[:6]),
		Sku:         slug.Make(name),
		Description: faker.Paragraph(),
		Price:       price,
		OfferPrice:  offerPrice,
		Stock:       rand.Intn(20) + 1,
	}
}

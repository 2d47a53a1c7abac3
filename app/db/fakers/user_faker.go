package fakers

import (
	"log"

	"github.com/go-faker/faker/v4"
	"github.com/sinashm/go-shop/app/helpers"
	"github.com/sinashm/go-shop/app/models"
)

func UserFaker() *models.User {
	password, err := helpers.HashPassword("password")
	if err != nil {
		log.Fatal("Failed to hash faker password:", err)
	}

	return &models.User{
		FirstName: faker.FirstName(),
		LastName:  faker.LastName(),
		Email:     faker.Email(),
		Phone:     faker.Phonenumber(),
		Password:  password,
		Role:      models.RoleCustomer,
	}
}

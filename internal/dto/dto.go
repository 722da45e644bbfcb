// Package dto holds the create payloads accepted by the services.
package dto

import "productselector/internal/models"

// ProductDTO carries the data of a new product.
type ProductDTO struct {
	Name      string  `json:"name" validate:"required,max=255"`
	Image     []byte  `json:"image"`
	RecipeIDs []int64 `json:"recipeIds"`
}

// RecipeDTO carries the data of a new recipe.
type RecipeDTO struct {
	Name            string                 `json:"name" validate:"required,max=255"`
	Description     string                 `json:"description" validate:"required"`
	Vegan           bool                   `json:"vegan"`
	DifficultyLevel models.DifficultyLevel `json:"difficultyLevel" validate:"required,oneof=EASY MEDIUM HARD"`
	Rating          *int64                 `json:"rating"`
	Image           []byte                 `json:"image"`
	ProductIDs      []int64                `json:"productIds"`
}

// UserDTO carries the data of a new user. Dates left empty fall back to today.
type UserDTO struct {
	Name             string             `json:"name" validate:"max=100"`
	Surname          string             `json:"surname" validate:"max=100"`
	Email            string             `json:"email" validate:"required,email,max=255"`
	Password         string             `json:"password" validate:"required"`
	BirthDate        models.Date        `json:"birthDate"`
	RegistrationDate models.Date        `json:"registrationDate"`
	AccessLevel      models.AccessLevel `json:"accessLevel" validate:"omitempty,oneof=USER ADMIN SUPER_ADMIN"`
}

package repositories

import (
	"context"
	"errors"

	"productselector/internal/models"
)

var (
	// ErrNotFound is returned when no row matches the requested id.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a unique constraint.
	ErrDuplicate = errors.New("duplicate record")
)

// Repository is the storage gateway shared by every entity type.
//
// Save inserts entities with a zero id and overwrites the row of a non-zero id,
// reporting ErrNotFound when that row does not exist. FindAllByIDIn returns only
// the ids that exist. DeleteByID reports ErrNotFound when nothing was deleted.
type Repository[T any] interface {
	Save(ctx context.Context, entity *T) error
	FindByID(ctx context.Context, id int64) (*T, error)
	FindAll(ctx context.Context) ([]T, error)
	FindAllByIDIn(ctx context.Context, ids []int64) ([]T, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	DeleteByID(ctx context.Context, id int64) error
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	Repository[models.Product]
	// FindByRecipesID returns the products used by the recipe.
	FindByRecipesID(ctx context.Context, recipeID int64) ([]models.Product, error)
	// FindByRecipesIDIn returns the products used by any of the recipes, each once.
	FindByRecipesIDIn(ctx context.Context, recipeIDs []int64) ([]models.Product, error)
}

// RecipeRepository defines the interface for recipe data access.
type RecipeRepository interface {
	Repository[models.Recipe]
	FindByProductsID(ctx context.Context, productID int64) ([]models.Recipe, error)
	FindByProductsIDIn(ctx context.Context, productIDs []int64) ([]models.Recipe, error)
}

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Repository[models.User]
}

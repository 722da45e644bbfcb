package repositories

import (
	"context"

	"gorm.io/gorm"

	"productselector/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	gormRepository[models.Product, *models.Product]
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		gormRepository: gormRepository[models.Product, *models.Product]{
			db:       db,
			preloads: []string{"Recipes"},
			join: &joinSide[models.Product]{
				column:      "product_id",
				otherColumn: "recipe_id",
				otherTable:  "recipes",
				relatedIDs:  (*models.Product).RecipeIDs,
			},
		},
	}
}

// FindByRecipesID retrieves the products linked to the recipe.
func (r *GORMProductRepository) FindByRecipesID(ctx context.Context, recipeID int64) ([]models.Product, error) {
	return r.findLinked(ctx, []int64{recipeID})
}

// FindByRecipesIDIn retrieves the products linked to any of the recipes.
func (r *GORMProductRepository) FindByRecipesIDIn(ctx context.Context, recipeIDs []int64) ([]models.Product, error) {
	return r.findLinked(ctx, recipeIDs)
}

package repositories

import (
	"context"

	"gorm.io/gorm"

	"productselector/internal/models"
)

// GORMRecipeRepository is a GORM implementation of RecipeRepository.
type GORMRecipeRepository struct {
	gormRepository[models.Recipe, *models.Recipe]
}

// NewGORMRecipeRepository creates a new instance of GORMRecipeRepository.
func NewGORMRecipeRepository(db *gorm.DB) *GORMRecipeRepository {
	return &GORMRecipeRepository{
		gormRepository: gormRepository[models.Recipe, *models.Recipe]{
			db:       db,
			preloads: []string{"Products"},
			join: &joinSide[models.Recipe]{
				column:      "recipe_id",
				otherColumn: "product_id",
				otherTable:  "products",
				relatedIDs:  (*models.Recipe).ProductIDs,
			},
		},
	}
}

func (r *GORMRecipeRepository) FindByProductsID(ctx context.Context, productID int64) ([]models.Recipe, error) {
	return r.findLinked(ctx, []int64{productID})
}

func (r *GORMRecipeRepository) FindByProductsIDIn(ctx context.Context, productIDs []int64) ([]models.Recipe, error) {
	return r.findLinked(ctx, productIDs)
}

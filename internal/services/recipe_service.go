package services

import (
	"context"

	"go.uber.org/zap"

	"productselector/internal/apperror"
	"productselector/internal/dto"
	"productselector/internal/models"
	"productselector/internal/repositories"
)

// RecipeService handles business logic related to recipes.
type RecipeService struct {
	recipes  repositories.RecipeRepository
	products repositories.ProductRepository
	notifier
}

// NewRecipeService creates a new RecipeService. publisher may be nil.
func NewRecipeService(recipes repositories.RecipeRepository, products repositories.ProductRepository, publisher EventPublisher, log *zap.Logger) *RecipeService {
	return &RecipeService{
		recipes:  recipes,
		products: products,
		notifier: notifier{publisher: publisher, log: log},
	}
}

// Create stores a new recipe linked to those of the given products that exist.
// The remaining fields are copied as given.
func (s *RecipeService) Create(ctx context.Context, in dto.RecipeDTO) (*models.Recipe, error) {
	products, err := s.products.FindAllByIDIn(ctx, in.ProductIDs)
	if err != nil {
		return nil, storageError(err, "resolve products", nil, nil)
	}

	recipe := &models.Recipe{
		Name:            in.Name,
		Description:     in.Description,
		Vegan:           in.Vegan,
		DifficultyLevel: in.DifficultyLevel,
		Rating:          in.Rating,
		Image:           in.Image,
		Products:        products,
	}
	if err := s.recipes.Save(ctx, recipe); err != nil {
		return nil, storageError(err, "create recipe", nil,
			apperror.Conflict(err, "recipe with name %q already exists", in.Name))
	}

	s.log.Info("Recipe created", zap.Int64("id", recipe.ID), zap.Int("products", len(recipe.Products)))
	s.notify("recipe", actionCreated, recipe.ID)
	return recipe, nil
}

func (s *RecipeService) ReadAll(ctx context.Context) ([]models.Recipe, error) {
	recipes, err := s.recipes.FindAll(ctx)
	if err != nil {
		return nil, storageError(err, "read recipes", nil, nil)
	}
	s.log.Debug("Listed recipes", zap.Int("count", len(recipes)))
	return recipes, nil
}

func (s *RecipeService) ReadByID(ctx context.Context, id int64) (*models.Recipe, error) {
	recipe, err := s.recipes.FindByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "read recipe",
			apperror.NotFound("recipe with id %d not found", id), nil)
	}
	return recipe, nil
}

func (s *RecipeService) ReadAllByIDIn(ctx context.Context, ids []int64) ([]models.Recipe, error) {
	if len(ids) == 0 {
		return nil, apperror.NotFound("no recipe ids given")
	}
	recipes, err := s.recipes.FindAllByIDIn(ctx, ids)
	if err != nil {
		return nil, storageError(err, "read recipes by ids", nil, nil)
	}
	if len(recipes) == 0 {
		return nil, apperror.NotFound("no recipes found with ids %v", ids)
	}
	s.log.Debug("Found recipes by ids", zap.Int("count", len(recipes)), zap.Int64s("ids", ids))
	return recipes, nil
}

func (s *RecipeService) ReadByProductID(ctx context.Context, productID int64) ([]models.Recipe, error) {
	recipes, err := s.recipes.FindByProductsID(ctx, productID)
	if err != nil {
		return nil, storageError(err, "read recipes by product", nil, nil)
	}
	if len(recipes) == 0 {
		return nil, apperror.NotFound("no recipes found for product with id %d", productID)
	}
	return recipes, nil
}

func (s *RecipeService) ReadByProductIDIn(ctx context.Context, productIDs []int64) ([]models.Recipe, error) {
	if len(productIDs) == 0 {
		return nil, apperror.NotFound("no product ids given")
	}
	recipes, err := s.recipes.FindByProductsIDIn(ctx, productIDs)
	if err != nil {
		return nil, storageError(err, "read recipes by products", nil, nil)
	}
	if len(recipes) == 0 {
		return nil, apperror.NotFound("no recipes found for products with ids %v", productIDs)
	}
	return recipes, nil
}

// Update overwrites an existing recipe with the complete given state.
func (s *RecipeService) Update(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	notFound := apperror.NotFound("cannot update: recipe with id %d not found", recipe.ID)

	exists, err := s.recipes.ExistsByID(ctx, recipe.ID)
	if err != nil {
		return nil, storageError(err, "check recipe", nil, nil)
	}
	if !exists {
		return nil, notFound
	}

	if err := s.recipes.Save(ctx, recipe); err != nil {
		return nil, storageError(err, "update recipe", notFound,
			apperror.Conflict(err, "recipe with name %q already exists", recipe.Name))
	}

	s.log.Info("Recipe updated", zap.Int64("id", recipe.ID))
	s.notify("recipe", actionUpdated, recipe.ID)
	return recipe, nil
}

func (s *RecipeService) Delete(ctx context.Context, id int64) error {
	notFound := apperror.NotFound("cannot delete: recipe with id %d not found", id)

	exists, err := s.recipes.ExistsByID(ctx, id)
	if err != nil {
		return storageError(err, "check recipe", nil, nil)
	}
	if !exists {
		return notFound
	}

	if err := s.recipes.DeleteByID(ctx, id); err != nil {
		return storageError(err, "delete recipe", notFound, nil)
	}

	s.log.Info("Recipe deleted", zap.Int64("id", id))
	s.notify("recipe", actionDeleted, id)
	return nil
}

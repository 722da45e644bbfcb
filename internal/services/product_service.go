package services

import (
	"context"

	"go.uber.org/zap"

	"productselector/internal/apperror"
	"productselector/internal/dto"
	"productselector/internal/models"
	"productselector/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	products repositories.ProductRepository
	recipes  repositories.RecipeRepository
	notifier
}

// NewProductService creates a new ProductService. publisher may be nil.
func NewProductService(products repositories.ProductRepository, recipes repositories.RecipeRepository, publisher EventPublisher, log *zap.Logger) *ProductService {
	return &ProductService{
		products: products,
		recipes:  recipes,
		notifier: notifier{publisher: publisher, log: log},
	}
}

// Create stores a new product linked to those of the given recipes that exist.
func (s *ProductService) Create(ctx context.Context, in dto.ProductDTO) (*models.Product, error) {
	recipes, err := s.recipes.FindAllByIDIn(ctx, in.RecipeIDs)
	if err != nil {
		return nil, storageError(err, "resolve recipes", nil, nil)
	}

	product := &models.Product{
		Name:    in.Name,
		Image:   in.Image,
		Recipes: recipes,
	}
	if err := s.products.Save(ctx, product); err != nil {
		return nil, storageError(err, "create product", nil,
			apperror.Conflict(err, "product with name %q already exists", in.Name))
	}

	s.log.Info("Product created", zap.Int64("id", product.ID), zap.Int("recipes", len(product.Recipes)))
	s.notify("product", actionCreated, product.ID)
	return product, nil
}

// ReadAll retrieves all products.
func (s *ProductService) ReadAll(ctx context.Context) ([]models.Product, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, storageError(err, "read products", nil, nil)
	}
	s.log.Debug("Listed products", zap.Int("count", len(products)))
	return products, nil
}

// ReadByID retrieves a single product by its ID.
func (s *ProductService) ReadByID(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "read product",
			apperror.NotFound("product with id %d not found", id), nil)
	}
	return product, nil
}

// ReadAllByIDIn retrieves the products among ids that exist. It fails only when none do.
func (s *ProductService) ReadAllByIDIn(ctx context.Context, ids []int64) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, apperror.NotFound("no product ids given")
	}
	products, err := s.products.FindAllByIDIn(ctx, ids)
	if err != nil {
		return nil, storageError(err, "read products by ids", nil, nil)
	}
	if len(products) == 0 {
		return nil, apperror.NotFound("no products found with ids %v", ids)
	}
	s.log.Debug("Found products by ids", zap.Int("count", len(products)), zap.Int64s("ids", ids))
	return products, nil
}

// ReadByRecipeID retrieves the products used by a recipe.
func (s *ProductService) ReadByRecipeID(ctx context.Context, recipeID int64) ([]models.Product, error) {
	products, err := s.products.FindByRecipesID(ctx, recipeID)
	if err != nil {
		return nil, storageError(err, "read products by recipe", nil, nil)
	}
	if len(products) == 0 {
		return nil, apperror.NotFound("no products found for recipe with id %d", recipeID)
	}
	return products, nil
}

// ReadByRecipeIDIn retrieves the products used by any of the recipes.
func (s *ProductService) ReadByRecipeIDIn(ctx context.Context, recipeIDs []int64) ([]models.Product, error) {
	if len(recipeIDs) == 0 {
		return nil, apperror.NotFound("no recipe ids given")
	}
	products, err := s.products.FindByRecipesIDIn(ctx, recipeIDs)
	if err != nil {
		return nil, storageError(err, "read products by recipes", nil, nil)
	}
	if len(products) == 0 {
		return nil, apperror.NotFound("no products found for recipes with ids %v", recipeIDs)
	}
	return products, nil
}

// Update overwrites an existing product with the complete given state,
// including its recipe links.
func (s *ProductService) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	notFound := apperror.NotFound("cannot update: product with id %d not found", product.ID)

	exists, err := s.products.ExistsByID(ctx, product.ID)
	if err != nil {
		return nil, storageError(err, "check product", nil, nil)
	}
	if !exists {
		return nil, notFound
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, storageError(err, "update product", notFound,
			apperror.Conflict(err, "product with name %q already exists", product.Name))
	}

	s.log.Info("Product updated", zap.Int64("id", product.ID))
	s.notify("product", actionUpdated, product.ID)
	return product, nil
}

// Delete removes a product and its recipe links.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	notFound := apperror.NotFound("cannot delete: product with id %d not found", id)

	exists, err := s.products.ExistsByID(ctx, id)
	if err != nil {
		return storageError(err, "check product", nil, nil)
	}
	if !exists {
		return notFound
	}

	if err := s.products.DeleteByID(ctx, id); err != nil {
		return storageError(err, "delete product", notFound, nil)
	}

	s.log.Info("Product deleted", zap.Int64("id", id))
	s.notify("product", actionDeleted, id)
	return nil
}

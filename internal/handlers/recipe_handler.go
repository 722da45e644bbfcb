package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"productselector/internal/dto"
	"productselector/internal/models"
	"productselector/internal/services"
)

// RecipeHandler handles HTTP requests for recipes.
type RecipeHandler struct {
	service  *services.RecipeService
	validate *validator.Validate
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(service *services.RecipeService) *RecipeHandler {
	return &RecipeHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the recipe routes. Fixed paths come before /:id.
func (h *RecipeHandler) RegisterRoutes(router fiber.Router) {
	recipeRoutes := router.Group("/recipes")
	recipeRoutes.Post("/", h.HandleCreate)
	recipeRoutes.Get("/", h.HandleReadAll)
	recipeRoutes.Get("/batch", h.HandleReadAllByIDs)
	recipeRoutes.Get("/product/batch", h.HandleReadByProductIDs)
	recipeRoutes.Get("/product/:id", h.HandleReadByProductID)
	recipeRoutes.Get("/:id", h.HandleReadByID)
	recipeRoutes.Put("/", h.HandleUpdate)
	recipeRoutes.Delete("/:id", h.HandleDelete)
}

// HandleCreate creates a recipe from a RecipeDTO.
func (h *RecipeHandler) HandleCreate(c *fiber.Ctx) error {
	var in dto.RecipeDTO
	if err := parseBody(c, h.validate, &in); err != nil {
		return err
	}
	recipe, err := h.service.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(recipe)
}

func (h *RecipeHandler) HandleReadAll(c *fiber.Ctx) error {
	recipes, err := h.service.ReadAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(recipes)
}

func (h *RecipeHandler) HandleReadByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	recipe, err := h.service.ReadByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(recipe)
}

// HandleReadAllByIDs returns the recipes listed in the ids query parameter.
func (h *RecipeHandler) HandleReadAllByIDs(c *fiber.Ctx) error {
	ids, err := queryIDs(c, "ids")
	if err != nil {
		return err
	}
	recipes, err := h.service.ReadAllByIDIn(c.UserContext(), ids)
	if err != nil {
		return err
	}
	return c.JSON(recipes)
}

func (h *RecipeHandler) HandleReadByProductID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	recipes, err := h.service.ReadByProductID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(recipes)
}

func (h *RecipeHandler) HandleReadByProductIDs(c *fiber.Ctx) error {
	ids, err := queryIDs(c, "ids")
	if err != nil {
		return err
	}
	recipes, err := h.service.ReadByProductIDIn(c.UserContext(), ids)
	if err != nil {
		return err
	}
	return c.JSON(recipes)
}

// HandleUpdate overwrites an existing recipe, product links included.
func (h *RecipeHandler) HandleUpdate(c *fiber.Ctx) error {
	var recipe models.Recipe
	if err := parseBody(c, h.validate, &recipe); err != nil {
		return err
	}
	updated, err := h.service.Update(c.UserContext(), &recipe)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

func (h *RecipeHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

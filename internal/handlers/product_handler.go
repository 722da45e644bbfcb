package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"productselector/internal/dto"
	"productselector/internal/models"
	"productselector/internal/services"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the product routes. Fixed paths come before /:id.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Post("/", h.HandleCreate)
	productRoutes.Get("/", h.HandleReadAll)
	productRoutes.Get("/batch", h.HandleReadAllByIDs)
	productRoutes.Get("/recipe/batch", h.HandleReadByRecipeIDs)
	productRoutes.Get("/recipe/:id", h.HandleReadByRecipeID)
	productRoutes.Get("/:id", h.HandleReadByID)
	productRoutes.Put("/", h.HandleUpdate)
	productRoutes.Delete("/:id", h.HandleDelete)
}

// HandleCreate creates a product from a ProductDTO.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var in dto.ProductDTO
	if err := parseBody(c, h.validate, &in); err != nil {
		return err
	}
	product, err := h.service.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

func (h *ProductHandler) HandleReadAll(c *fiber.Ctx) error {
	products, err := h.service.ReadAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(products)
}

func (h *ProductHandler) HandleReadByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	product, err := h.service.ReadByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// HandleReadAllByIDs returns the products listed in the ids query parameter.
func (h *ProductHandler) HandleReadAllByIDs(c *fiber.Ctx) error {
	ids, err := queryIDs(c, "ids")
	if err != nil {
		return err
	}
	products, err := h.service.ReadAllByIDIn(c.UserContext(), ids)
	if err != nil {
		return err
	}
	return c.JSON(products)
}

func (h *ProductHandler) HandleReadByRecipeID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	products, err := h.service.ReadByRecipeID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(products)
}

func (h *ProductHandler) HandleReadByRecipeIDs(c *fiber.Ctx) error {
	ids, err := queryIDs(c, "ids")
	if err != nil {
		return err
	}
	products, err := h.service.ReadByRecipeIDIn(c.UserContext(), ids)
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// HandleUpdate overwrites an existing product, recipe links included.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	var product models.Product
	if err := parseBody(c, h.validate, &product); err != nil {
		return err
	}
	updated, err := h.service.Update(c.UserContext(), &product)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"productselector/internal/dto"
	"productselector/internal/models"
	"productselector/internal/services"
)

// UserHandler handles HTTP requests for users. Passwords are accepted but
// never written back to clients.
type UserHandler struct {
	service  *services.UserService
	validate *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the user routes.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Post("/", h.HandleCreate)
	userRoutes.Get("/", h.HandleReadAll)
	userRoutes.Get("/batch", h.HandleReadAllByIDs)
	userRoutes.Get("/:id", h.HandleReadByID)
	userRoutes.Put("/", h.HandleUpdate)
	userRoutes.Delete("/:id", h.HandleDelete)
}

func (h *UserHandler) HandleCreate(c *fiber.Ctx) error {
	var in dto.UserDTO
	if err := parseBody(c, h.validate, &in); err != nil {
		return err
	}
	user, err := h.service.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(publicUser(*user))
}

func (h *UserHandler) HandleReadAll(c *fiber.Ctx) error {
	users, err := h.service.ReadAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(publicUsers(users))
}

func (h *UserHandler) HandleReadByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	user, err := h.service.ReadByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(publicUser(*user))
}

func (h *UserHandler) HandleReadAllByIDs(c *fiber.Ctx) error {
	ids, err := queryIDs(c, "ids")
	if err != nil {
		return err
	}
	users, err := h.service.ReadAllByIDIn(c.UserContext(), ids)
	if err != nil {
		return err
	}
	return c.JSON(publicUsers(users))
}

func (h *UserHandler) HandleUpdate(c *fiber.Ctx) error {
	var user models.User
	if err := parseBody(c, h.validate, &user); err != nil {
		return err
	}
	updated, err := h.service.Update(c.UserContext(), &user)
	if err != nil {
		return err
	}
	return c.JSON(publicUser(*updated))
}

func (h *UserHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func publicUser(u models.User) models.User {
	u.Password = ""
	return u
}

func publicUsers(users []models.User) []models.User {
	out := make([]models.User, len(users))
	for i, u := range users {
		out[i] = publicUser(u)
	}
	return out
}

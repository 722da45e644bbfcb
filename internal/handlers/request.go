package handlers

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"productselector/internal/apperror"
)

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// parseBody decodes the JSON request body into out and validates it.
func parseBody(c *fiber.Ctx, v *validator.Validate, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperror.BadRequest("Invalid request body: %v", err)
	}
	if err := v.Struct(out); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return apperror.BadRequest("Invalid request body: %v", err)
		}
		fields := make(map[string]string, len(validationErrors))
		for _, e := range validationErrors {
			fields[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return &ValidationError{Fields: fields}
	}
	return nil
}

// pathID parses the :id route parameter.
func pathID(c *fiber.Ctx) (int64, error) {
	raw := c.Params("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.BadRequest("Invalid id %q", raw)
	}
	return id, nil
}

// queryIDs collects the ids of a query parameter given either repeated
// (?ids=1&ids=2) or comma separated (?ids=1,2).
func queryIDs(c *fiber.Ctx, key string) ([]int64, error) {
	var ids []int64
	for _, raw := range c.Context().QueryArgs().PeekMulti(key) {
		for _, part := range strings.Split(string(raw), ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, apperror.BadRequest("Invalid id %q in query parameter %q", part, key)
			}
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, apperror.BadRequest("Query parameter %q is required", key)
	}
	return ids, nil
}

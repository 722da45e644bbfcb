package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"productselector/internal/apperror"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
	Reference string            `json:"reference,omitempty"`
}

// ValidationError lists the request fields that failed validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

var statusByKind = map[apperror.Kind]int{
	apperror.KindNotFound:   fiber.StatusNotFound,
	apperror.KindBadRequest: fiber.StatusBadRequest,
	apperror.KindConflict:   fiber.StatusConflict,
}

// ErrorHandler renders errors returned by handlers. Internal failures are
// logged with a reference that is echoed to the client instead of the cause.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Code:    string(apperror.KindBadRequest),
				Message: "Validation failed",
				Errors:  validationErr.Fields,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError {
			return c.Status(fiberErr.Code).JSON(ErrorResponse{
				Code:    codeForStatus(fiberErr.Code),
				Message: fiberErr.Message,
			})
		}

		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			if status, ok := statusByKind[appErr.Kind]; ok {
				return c.Status(status).JSON(ErrorResponse{
					Code:    string(appErr.Kind),
					Message: appErr.Message,
				})
			}
		}

		reference := uuid.NewString()
		log.Error("Request failed",
			zap.String("reference", reference),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Code:      string(apperror.KindInternal),
			Message:   "An unexpected error occurred",
			Reference: reference,
		})
	}
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return string(apperror.KindNotFound)
	case fiber.StatusConflict:
		return string(apperror.KindConflict)
	case fiber.StatusBadRequest:
		return string(apperror.KindBadRequest)
	}
	return strings.ToUpper(strings.ReplaceAll(utils.StatusMessage(status), " ", "_"))
}

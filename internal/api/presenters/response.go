package presenters

import (
	"Foodgram-Backend/domain"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type Response struct {
	Status  bool              `json:"status"`
	Message string            `json:"message"`
	Data    interface{}       `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data interface{}, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	res := Response{
		Status:  false,
		Message: message,
	}
	if err != nil {
		res.Error = err.Error()
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			res.Errors = ve.Fields
		}
	}
	if statusCode >= fiber.StatusInternalServerError {
		log.Errorf("%s %s: %s: %v", c.Method(), c.Path(), message, err)
		res.Error = "internal server error"
	}
	return c.Status(statusCode).JSON(res)
}

// FailResponse writes an error response with the status that matches the
// kind of err.
func FailResponse(c *fiber.Ctx, message string, err error) error {
	return ErrorResponse(c, StatusFromError(err), message, err)
}

func StatusFromError(err error) int {
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrAuthenticationRequired):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrPermission):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict
	default:
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fe.Code
		}
		return fiber.StatusInternalServerError
	}
}

package handlers

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"shopapi/internal/apperrors"
)

// statusFromError maps service error kinds to HTTP status codes:
// 404 NotFound, 400 BadRequest, 409 Conflict, 422 Validation, 500 otherwise.
func statusFromError(err error) int {
	switch apperrors.KindOf(err) {
	case apperrors.KindNotFound:
		return fiber.StatusNotFound
	case apperrors.KindBadRequest:
		return fiber.StatusBadRequest
	case apperrors.KindConflict:
		return fiber.StatusConflict
	case apperrors.KindValidation:
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

// errorJSON writes a service failure as a JSON error response.
func errorJSON(c *fiber.Ctx, err error) error {
	return c.Status(statusFromError(err)).JSON(fiber.Map{
		"message": err.Error(),
	})
}

// validationJSON writes schema validation failures as a 422 with a
// field-to-reason mapping.
func validationJSON(c *fiber.Ctx, err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// intParam parses an integer path parameter.
func intParam(c *fiber.Ctx, name string) (int, error) {
	value, err := c.ParamsInt(name)
	if err != nil {
		return 0, apperrors.Validation("invalid %s: %s", name, c.Params(name))
	}
	return value, nil
}

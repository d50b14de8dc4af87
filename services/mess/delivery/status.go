package delivery

import (
	"errors"
	"messadmin/domain"

	"github.com/gofiber/fiber/v2"
)

// statusOf maps domain errors onto HTTP statuses. Anything unrecognized is a
// plain 500.
func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrNoMealsSelected):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrPaymentDeclined):
		return fiber.StatusPaymentRequired
	case errors.Is(err, domain.ErrAlreadyPaid),
		errors.Is(err, domain.ErrDuplicatePending),
		errors.Is(err, domain.ErrAlreadyResolved):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrConfigMissing):
		return fiber.StatusPreconditionFailed
	default:
		return fiber.StatusInternalServerError
	}
}

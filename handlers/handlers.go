// handlers/handlers.go - Service wiring and shared response helpers
package handlers

import (
	"errors"
	"log"

	"findteam/services"

	"github.com/gofiber/fiber/v2"
)

var (
	authService    *services.AuthService
	teamService    *services.TeamService
	profileService *services.ProfileService
	tokenService   *services.TokenService
)

// Init wires the constructed services into the handler package.
func Init(auth *services.AuthService, teams *services.TeamService,
	profiles *services.ProfileService, tokens *services.TokenService) {
	authService = auth
	teamService = teams
	profileService = profiles
	tokenService = tokens
}

// fail maps a service error to its HTTP status and the JSON error
// envelope. Unknown errors are logged and hidden behind a 500.
func fail(c *fiber.Ctx, err error) error {
	status := 500
	message := "internal server error"

	switch {
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidToken),
		errors.Is(err, services.ErrUserGone):
		status, message = 401, err.Error()
	case errors.Is(err, services.ErrUnverified),
		errors.Is(err, services.ErrForbidden):
		status, message = 403, err.Error()
	case errors.Is(err, services.ErrNotFound):
		status, message = 404, err.Error()
	case errors.Is(err, services.ErrDuplicateEmail),
		errors.Is(err, services.ErrDuplicateUsername),
		errors.Is(err, services.ErrDuplicateOwnership),
		errors.Is(err, services.ErrPasswordMismatch),
		errors.Is(err, services.ErrInvalidData),
		errors.Is(err, services.ErrNoSuchMembership):
		status, message = 400, err.Error()
	default:
		log.Printf("unhandled error: %v", err)
	}

	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func ok(c *fiber.Ctx, data fiber.Map) error {
	payload := fiber.Map{"success": true}
	for k, v := range data {
		payload[k] = v
	}
	return c.JSON(payload)
}

// middleware/auth.go - Cookie session middleware
package middleware

import (
	"errors"

	"findteam/models"
	"findteam/services"

	"github.com/gofiber/fiber/v2"
)

const localsUserKey = "currentUser"

// Session resolves the access-token cookie to a user on every request.
// 401 for a missing/invalid/expired token, 403 for an unverified
// account. No server-side session state.
func Session(tokens *services.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Cookies(tokens.AccessCookieName())
		if raw == "" {
			return c.Status(401).JSON(fiber.Map{
				"success": false,
				"error":   "not authenticated",
			})
		}

		user, err := tokens.Validate(raw, services.TokenKindAccess)
		if err != nil {
			if errors.Is(err, services.ErrUnverified) {
				return c.Status(403).JSON(fiber.Map{
					"success": false,
					"error":   services.ErrUnverified.Error(),
				})
			}
			return c.Status(401).JSON(fiber.Map{
				"success": false,
				"error":   services.ErrInvalidToken.Error(),
			})
		}

		c.Locals(localsUserKey, user)
		return c.Next()
	}
}

// CurrentUser returns the identity resolved by Session.
func CurrentUser(c *fiber.Ctx) (*models.User, error) {
	user, ok := c.Locals(localsUserKey).(*models.User)
	if !ok || user == nil {
		return nil, fiber.NewError(401, "user not authenticated")
	}
	return user, nil
}

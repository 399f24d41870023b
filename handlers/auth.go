// handlers/auth.go - Registration, login, tokens and recovery endpoints
package handlers

import (
	"findteam/services"

	"github.com/gofiber/fiber/v2"
)

// Register creates an unverified account and mails a verification link.
// POST /auth/register
func Register(c *fiber.Ctx) error {
	var req services.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "invalid request body",
		})
	}

	resent, err := authService.Register(c.UserContext(), req)
	if err != nil {
		return fail(c, err)
	}
	if resent {
		return ok(c, fiber.Map{"message": "verification email resent"})
	}
	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"message": "verification email sent",
	})
}

// Login validates credentials and sets both token cookies.
// POST /auth/login
func Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "invalid request body",
		})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "email and password required",
		})
	}

	user, err := authService.Login(req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}
	if err := tokenService.IssuePair(c, user); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"user": user})
}

// Refresh rotates both tokens against a valid refresh cookie.
// GET /auth/refresh
func Refresh(c *fiber.Ctx) error {
	raw := c.Cookies(tokenService.RefreshCookieName())
	if raw == "" {
		return c.Status(403).JSON(fiber.Map{
			"success": false,
			"error":   "not authenticated",
		})
	}

	user, err := tokenService.Validate(raw, services.TokenKindRefresh)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "could not refresh access token",
		})
	}

	if err := tokenService.IssuePair(c, user); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"user": user})
}

// Logout clears both token cookies.
// GET /auth/logout
func Logout(c *fiber.Ctx) error {
	tokenService.Revoke(c)
	return ok(c, fiber.Map{"message": "logged out"})
}

// VerifyEmail redeems the emailed token, activates the account,
// provisions the default profile and signs the user in.
// PATCH /auth/verify/:token
func VerifyEmail(c *fiber.Ctx) error {
	user, err := authService.VerifyEmail(c.UserContext(), c.Params("token"))
	if err != nil {
		return fail(c, err)
	}
	if err := tokenService.IssuePair(c, user); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"user": user})
}

// RecoverPassword mails a reset link. Responds 200 whether or not the
// email is registered.
// POST /auth/password_recovery
func RecoverPassword(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil || req.Email == "" {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "email required",
		})
	}

	if err := authService.RecoverPassword(c.UserContext(), req.Email); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"message": "recovery email sent"})
}

// ChangePassword redeems the reset token and stores the new password.
// POST /auth/change_password/:token
func ChangePassword(c *fiber.Ctx) error {
	var req struct {
		NewPassword       string `json:"new_password"`
		ConfirmedPassword string `json:"confirmed_password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "invalid request body",
		})
	}

	err := authService.ChangePassword(c.UserContext(), c.Params("token"),
		req.NewPassword, req.ConfirmedPassword)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"message": "password changed"})
}

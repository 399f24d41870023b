package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"findteam/middleware"
	"findteam/services"
)

// GetProfile returns another user's public profile page.
// GET /profile/:user_id
func GetProfile(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "invalid user id",
		})
	}

	profile, err := profileService.Get(userID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"profile": profile})
}

// ChangeProfile applies partial edits to the caller's own profile.
// PATCH /profile/change_profile
func ChangeProfile(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}

	var in services.UpdateProfileInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "invalid request body",
		})
	}

	if err := profileService.Update(user.ID, in); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"message": "profile updated"})
}

// DeleteProfile erases the caller's account, profile, owned teams and
// memberships, then clears the session cookies.
// DELETE /profile/delete_profile
func DeleteProfile(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}

	if err := profileService.Delete(user.ID); err != nil {
		return fail(c, err)
	}
	tokenService.Revoke(c)
	return ok(c, fiber.Map{"message": "account deleted"})
}

// Teams lists the teams the caller has joined as a member.
// GET /profile/teams
func Teams(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}

	teams, err := teamService.MemberTeams(user.ID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"teams": teams})
}

// MyTeams lists the teams the caller owns.
// GET /profile/my_teams
func MyTeams(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}

	teams, err := teamService.OwnedTeams(user.ID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"teams": teams})
}

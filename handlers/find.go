package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"findteam/middleware"
)

// TeamsList returns every registered team with its tags.
// GET /find/teams_list
func TeamsList(c *fiber.Ctx) error {
	teams, err := teamService.List()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"teams": teams})
}

// GetTeam returns one team with its owner name and member list.
// GET /find/team/:team_id
func GetTeam(c *fiber.Ctx) error {
	teamID, err := uuid.Parse(c.Params("team_id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "invalid team id",
		})
	}

	team, err := teamService.Get(teamID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"team": team})
}

type joinRequest struct {
	TeamID      uuid.UUID `json:"team_id"`
	CoverLetter string    `json:"cover_letter"`
}

// Join files an application to join a team.
// POST /find/join
func Join(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}

	var req joinRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "invalid request body",
		})
	}

	if err := teamService.Apply(user.ID, req.TeamID, req.CoverLetter); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"message": "application sent"})
}

// Quit removes the caller from a team they are a member of.
// POST /find/quit/:team_id
func Quit(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}

	teamID, err := uuid.Parse(c.Params("team_id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "invalid team id",
		})
	}

	if err := teamService.Leave(user.ID, teamID); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"message": "you left the team"})
}

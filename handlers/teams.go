// handlers/teams.go - Owner-side team management endpoints
package handlers

import (
	"findteam/middleware"
	"findteam/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CreateTeam creates a team owned by the requester.
// POST /team/create
func CreateTeam(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}

	var req services.TeamInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "invalid request body",
		})
	}

	team, err := teamService.Create(user.ID, req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"message": "team created",
		"team":    team,
	})
}

// UpdateTeam edits the requester's team.
// PATCH /team/change/:team_id
func UpdateTeam(c *fiber.Ctx) error {
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

	var req services.TeamInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "invalid request body",
		})
	}

	if err := teamService.Update(teamID, user.ID, req); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"message": "team updated"})
}

// DeleteTeam removes the requester's team with all attachments.
// DELETE /team/delete/:team_id
func DeleteTeam(c *fiber.Ctx) error {
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

	if err := teamService.Delete(teamID, user.ID); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"message": "team deleted"})
}

// MyTeam returns the requester's own team page.
// GET /team/my_team
func MyTeam(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}

	team, err := teamService.OwnedTeam(user.ID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"team": team})
}

// MembersList lists a team's members for the owner or a member.
// GET /team/members_list?team_id=
func MembersList(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	teamID, err := uuid.Parse(c.Query("team_id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "invalid team id",
		})
	}

	members, err := teamService.Members(teamID, user.ID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"members": members, "count": len(members)})
}

// ApplicationsList lists pending join requests for the owner.
// GET /team/applications_list?team_id=
func ApplicationsList(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	teamID, err := uuid.Parse(c.Query("team_id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "invalid team id",
		})
	}

	applications, err := teamService.Applications(teamID, user.ID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"applications": applications, "count": len(applications)})
}

// TakeComrade accepts a pending join request.
// POST /team/take_comrade?comrade_id=&team_id=
func TakeComrade(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	comradeID, teamID, okIDs := comradeQuery(c)
	if !okIDs {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "invalid comrade or team id",
		})
	}

	if err := teamService.Accept(user.ID, comradeID, teamID); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"message": "comrade added into team"})
}

// RejectComrade declines a pending join request.
// POST /team/reject_comrade?comrade_id=&team_id=
func RejectComrade(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	comradeID, teamID, okIDs := comradeQuery(c)
	if !okIDs {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "invalid comrade or team id",
		})
	}

	if err := teamService.Reject(user.ID, comradeID, teamID); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"message": "comrade's application rejected"})
}

// ExcludeComrade removes a member from the team.
// POST /team/exclude_comrade?comrade_id=&team_id=
func ExcludeComrade(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	comradeID, teamID, okIDs := comradeQuery(c)
	if !okIDs {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "invalid comrade or team id",
		})
	}

	if err := teamService.Exclude(user.ID, comradeID, teamID); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"message": "comrade excluded"})
}

func comradeQuery(c *fiber.Ctx) (comradeID, teamID uuid.UUID, valid bool) {
	comradeID, err := uuid.Parse(c.Query("comrade_id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, false
	}
	teamID, err = uuid.Parse(c.Query("team_id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, false
	}
	return comradeID, teamID, true
}

// handlers/admin/admin.go - Privileged operations behind a secret path prefix
package admin

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"findteam/config"
	"findteam/database"
	"findteam/middleware"
	"findteam/models"
	"findteam/services"
)

var (
	cfg            *config.Config
	teamService    *services.TeamService
	profileService *services.ProfileService
)

// Init wires the package to the shared config and services.
func Init(c *config.Config, teams *services.TeamService, profiles *services.ProfileService) {
	cfg = c
	teamService = teams
	profileService = profiles
}

// Gate verifies the secret path segment and the caller's username.
// A wrong secret answers 404 so the admin surface stays invisible.
func Gate(c *fiber.Ctx) error {
	if c.Params("secret") != cfg.AdminPathSecret {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"error":   "not found",
		})
	}

	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	if !cfg.IsAdmin(user.Username) {
		return c.Status(403).JSON(fiber.Map{
			"success": false,
			"error":   "no access",
		})
	}
	return c.Next()
}

// AllUsers returns every registered account.
// GET /admin/:secret/all_users
func AllUsers(c *fiber.Ctx) error {
	db := database.GetDB()

	var users []models.User
	if err := db.Order("created_at").Find(&users).Error; err != nil {
		return internalError(c)
	}
	return c.JSON(fiber.Map{"success": true, "users": users})
}

// AllTeams returns every team with its tags.
// GET /admin/:secret/all_teams
func AllTeams(c *fiber.Ctx) error {
	teams, err := teamService.List()
	if err != nil {
		return internalError(c)
	}
	return c.JSON(fiber.Map{"success": true, "teams": teams})
}

// SearchUser looks an account up by id, with its profile, or by
// username substring.
// GET /admin/:secret/search_user?user_id= | ?username=
func SearchUser(c *fiber.Ctx) error {
	db := database.GetDB()

	if raw := c.Query("user_id"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{
				"success": false,
				"error":   "invalid user id",
			})
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			return c.Status(404).JSON(fiber.Map{
				"success": false,
				"error":   "not found",
			})
		}
		var profile models.Profile
		db.First(&profile, "user_id = ?", userID)
		return c.JSON(fiber.Map{"success": true, "user": user, "profile": profile})
	}

	var users []models.User
	pattern := "%" + c.Query("username") + "%"
	if err := db.Where("username LIKE ?", pattern).Find(&users).Error; err != nil {
		return internalError(c)
	}
	return c.JSON(fiber.Map{"success": true, "users": users})
}

// SearchTeam looks a team up by id or by title substring.
// GET /admin/:secret/search_team?team_id= | ?title=
func SearchTeam(c *fiber.Ctx) error {
	db := database.GetDB()

	if raw := c.Query("team_id"); raw != "" {
		teamID, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{
				"success": false,
				"error":   "invalid team id",
			})
		}

		detail, err := teamService.Get(teamID)
		if err != nil {
			return c.Status(404).JSON(fiber.Map{
				"success": false,
				"error":   "not found",
			})
		}
		return c.JSON(fiber.Map{"success": true, "team": detail})
	}

	var teams []models.Team
	pattern := "%" + c.Query("title") + "%"
	if err := db.Preload("Tags").Where("title LIKE ?", pattern).Find(&teams).Error; err != nil {
		return internalError(c)
	}
	return c.JSON(fiber.Map{"success": true, "teams": teams})
}

// DeleteUser erases an account with everything it owns.
// DELETE /admin/:secret/delete_user/:user_id
func DeleteUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "invalid user id",
		})
	}

	if err := profileService.Delete(userID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{
				"success": false,
				"error":   "not found",
			})
		}
		return internalError(c)
	}
	return c.JSON(fiber.Map{"success": true, "message": "user deleted"})
}

// DeleteTeam erases any team regardless of ownership.
// DELETE /admin/:secret/delete_team/:team_id
func DeleteTeam(c *fiber.Ctx) error {
	teamID, err := uuid.Parse(c.Params("team_id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "invalid team id",
		})
	}

	if err := teamService.DeleteAny(teamID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{
				"success": false,
				"error":   "not found",
			})
		}
		return internalError(c)
	}
	return c.JSON(fiber.Map{"success": true, "message": "team deleted"})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(500).JSON(fiber.Map{
		"success": false,
		"error":   "internal server error",
	})
}

// main.go - Application entrypoint and route table
package main

import (
	"log"
	"os"
	"time"

	"findteam/config"
	"findteam/database"
	"findteam/handlers"
	"findteam/handlers/admin"
	"findteam/middleware"
	"findteam/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Validate critical environment variables
	validateEnvironment()

	cfg := config.Load()

	// Initialize database
	database.InitDB(cfg.DatabaseURL)
	defer database.CloseDB()

	// Ephemeral token storage (verification and reset links)
	store, err := services.NewRedisTokenStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatal("FATAL: cannot reach redis: ", err)
	}
	defer store.Close()

	db := database.GetDB()
	tokenService := services.NewTokenService(db, store, cfg)
	mailer := services.NewMailer(cfg)
	profileService := services.NewProfileService(db)
	teamService := services.NewTeamService(db, cfg.SingleTeamPerOwner)
	authService := services.NewAuthService(db, tokenService, mailer, profileService)

	handlers.Init(authService, teamService, profileService, tokenService)
	admin.Init(cfg, teamService, profileService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    4 * 1024 * 1024, // 4MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	session := middleware.Session(tokenService)

	// Auth routes with stricter rate limiting
	authGroup := app.Group("/auth")
	authGroup.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: time.Minute,
	}))
	authGroup.Post("/register", handlers.Register)
	authGroup.Post("/login", handlers.Login)
	authGroup.Get("/refresh", handlers.Refresh)
	authGroup.Get("/logout", handlers.Logout)
	authGroup.Patch("/verify/:token", handlers.VerifyEmail)
	authGroup.Post("/password_recovery", handlers.RecoverPassword)
	authGroup.Post("/change_password/:token", handlers.ChangePassword)

	// Team discovery and membership (requires a session)
	findGroup := app.Group("/find")
	findGroup.Use(session)
	findGroup.Get("/teams_list", handlers.TeamsList)
	findGroup.Get("/team/:team_id", handlers.GetTeam)
	findGroup.Post("/join", handlers.Join)
	findGroup.Post("/quit/:team_id", handlers.Quit)

	// Owner-side team management
	teamGroup := app.Group("/team")
	teamGroup.Use(session)
	teamGroup.Post("/create", handlers.CreateTeam)
	teamGroup.Patch("/change/:team_id", handlers.UpdateTeam)
	teamGroup.Delete("/delete/:team_id", handlers.DeleteTeam)
	teamGroup.Get("/my_team", handlers.MyTeam)
	teamGroup.Get("/members_list", handlers.MembersList)
	teamGroup.Get("/applications_list", handlers.ApplicationsList)
	teamGroup.Post("/take_comrade", handlers.TakeComrade)
	teamGroup.Post("/reject_comrade", handlers.RejectComrade)
	teamGroup.Post("/exclude_comrade", handlers.ExcludeComrade)

	// Profiles
	profileGroup := app.Group("/profile")
	profileGroup.Use(session)
	profileGroup.Get("/teams", handlers.Teams)
	profileGroup.Get("/my_teams", handlers.MyTeams)
	profileGroup.Patch("/change_profile", handlers.ChangeProfile)
	profileGroup.Delete("/delete_profile", handlers.DeleteProfile)
	profileGroup.Get("/:user_id", handlers.GetProfile)

	// Admin routes behind a secret path segment
	adminGroup := app.Group("/admin/:secret")
	adminGroup.Use(session)
	adminGroup.Use(admin.Gate)
	adminGroup.Get("/all_users", admin.AllUsers)
	adminGroup.Get("/all_teams", admin.AllTeams)
	adminGroup.Get("/search_user", admin.SearchUser)
	adminGroup.Get("/search_team", admin.SearchTeam)
	adminGroup.Delete("/delete_user/:user_id", admin.DeleteUser)
	adminGroup.Delete("/delete_team/:team_id", admin.DeleteTeam)

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
		})
	})

	log.Printf("HTTP server starting on port %s", cfg.Port)
	log.Printf("Environment: %s", cfg.Env)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start HTTP server:", err)
	}
}

// validateEnvironment checks for required environment variables
func validateEnvironment() {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("FATAL: JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
	}
	if len(jwtSecret) < 32 {
		log.Fatal("FATAL: JWT_SECRET must be at least 32 characters long")
	}

	if os.Getenv("APP_ENV") == "production" {
		corsOrigins := os.Getenv("CORS_ORIGINS")
		if corsOrigins == "" || corsOrigins == "http://localhost:3000" {
			log.Println("WARNING: CORS_ORIGINS not properly configured for production")
		}
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Don't expose internal errors in production
	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

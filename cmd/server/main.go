package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/swapnilgupta14/synapse-api/internal/config"
	"github.com/swapnilgupta14/synapse-api/internal/constants"
	"github.com/swapnilgupta14/synapse-api/internal/database"
	"github.com/swapnilgupta14/synapse-api/internal/handlers"
	"github.com/swapnilgupta14/synapse-api/internal/middleware"
	"github.com/swapnilgupta14/synapse-api/internal/models"
	"github.com/swapnilgupta14/synapse-api/internal/repository"
	"github.com/swapnilgupta14/synapse-api/internal/scheduler"
	"github.com/swapnilgupta14/synapse-api/internal/services"
)

func main() {
	// Load .env when present; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg := config.Load()

	gin.SetMode(cfg.GinMode)

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := services.NewAuthService(userRepo)
	orgService := services.NewOrganizationService(orgRepo, userRepo)
	projectService := services.NewProjectService(projectRepo, teamRepo)
	teamService := services.NewTeamService(teamRepo, projectRepo, userRepo)
	taskService := services.NewTaskService(taskRepo, teamRepo, userRepo)

	authHandler := handlers.NewAuthHandler(authService)
	orgHandler := handlers.NewOrganizationHandler(orgService)
	projectHandler := handlers.NewProjectHandler(projectService)
	teamHandler := handlers.NewTeamHandler(teamService)
	taskHandler := handlers.NewTaskHandler(taskService)

	r := gin.Default()

	// Session store backed by Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,
		"tcp",
		redisAddr,
		"",
		"",
		[]byte(cfg.SessionSecret),
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Synapse API is running",
		})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		orgs := api.Group("/organisations")
		orgs.Use(middleware.RequireAuth())
		{
			orgs.POST("", orgHandler.CreateOrganization)
			orgs.GET("/:id", orgHandler.GetOrganization)
			orgs.PATCH("/:id", orgHandler.UpdateOrganization)
			orgs.DELETE("/:id", orgHandler.DeleteOrganization)
			orgs.GET("/:id/members", orgHandler.ListMembers)
			orgs.POST("/:id/members", orgHandler.AddMembers)
			orgs.DELETE("/:id/members/:user_id", orgHandler.RemoveMember)
		}

		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth())
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.GET("/:id", projectHandler.GetProject)
			projects.PATCH("/:id", projectHandler.UpdateProject)
			projects.DELETE("/:id", projectHandler.DeleteProject)
			projects.POST("/:id/teams", projectHandler.AssignTeam)
			projects.DELETE("/:id/teams/:team_id", projectHandler.DetachTeam)
		}

		teams := api.Group("/teams")
		teams.Use(middleware.RequireAuth())
		{
			teams.GET("", teamHandler.ListTeams)
			teams.POST("", teamHandler.CreateTeam)
			teams.GET("/:id", teamHandler.GetTeam)
			teams.PATCH("/:id", teamHandler.UpdateTeam)
			teams.DELETE("/:id", teamHandler.DeleteTeam)
			teams.POST("/:id/members", teamHandler.AddMembers)
			teams.DELETE("/:id/members", teamHandler.RemoveMembers)
			teams.POST("/:id/members/:user_id/toggle-role", teamHandler.ToggleMemberRole)
		}

		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.POST("/bulk", taskHandler.BulkUpdate)
			tasks.POST("/reassign", taskHandler.Reassign)
			tasks.POST("/priorities", taskHandler.UpdatePriorities)
			tasks.POST("/archive", middleware.RequireRole(models.RoleAdmin), taskHandler.Archive)
			tasks.GET("/archived", middleware.RequireRole(models.RoleAdmin), taskHandler.ListArchived)
			tasks.GET("/statistics", middleware.RequireRole(models.RoleAdmin), taskHandler.Statistics)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.POST("/:id/toggle", taskHandler.ToggleStatus)
		}
	}

	sweeper := scheduler.NewArchiveSweeper(taskRepo, cfg.ArchiveSweepInterval)
	sweeper.Start()
	defer sweeper.Stop()

	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

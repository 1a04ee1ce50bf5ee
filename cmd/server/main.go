package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nonetrello/nonetrello-api/internal/auth"
	"github.com/nonetrello/nonetrello-api/internal/config"
	"github.com/nonetrello/nonetrello-api/internal/database"
	"github.com/nonetrello/nonetrello-api/internal/handlers"
	"github.com/nonetrello/nonetrello-api/internal/middleware"
	"github.com/nonetrello/nonetrello-api/internal/repository"
	"github.com/nonetrello/nonetrello-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	collabRepo := repository.NewCollaboratorRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	cardRepo := repository.NewCardRepository(db)
	tagRepo := repository.NewTagRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Services
	authority := services.NewAuthority(collabRepo, boardRepo, cardRepo)
	authService := services.NewAuthService(userRepo)
	projectService := services.NewProjectService(projectRepo, collabRepo, notificationRepo, authority)
	boardService := services.NewBoardService(boardRepo, authority)
	cardService := services.NewCardService(cardRepo, authority)
	tagService := services.NewTagService(tagRepo, authority)
	notificationService := services.NewNotificationService(notificationRepo)

	// Tokens and handlers
	tokens := auth.NewManager(cfg.JWTSecret, cfg.AccessTTLMin, cfg.RefreshTTLDays)
	authHandler := handlers.NewAuthHandler(authService, tokens, cfg.CookieSecure)
	projectHandler := handlers.NewProjectHandler(projectService)
	boardHandler := handlers.NewBoardHandler(boardService)
	cardHandler := handlers.NewCardHandler(cardService)
	tagHandler := handlers.NewTagHandler(tagService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "nonetrello API is running",
		})
	})

	api := r.Group("/api/v1")
	{
		// Accounts and sessions
		api.POST("/users", authHandler.Register)
		api.GET("/users", middleware.RequireAuth(tokens), authHandler.GetClaims)
		api.PATCH("/users", middleware.RequireAuth(tokens), authHandler.EditUser)
		api.DELETE("/users", middleware.RequireAuth(tokens), authHandler.DeleteUser)
		api.POST("/users/auth", authHandler.Login)
		api.POST("/refresh", authHandler.Refresh)

		// Projects: fetch-by-id works for guests, everything else needs a session
		api.GET("/projects", middleware.OptionalAuth(tokens), projectHandler.GetProjects)

		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth(tokens))
		{
			projects.POST("", projectHandler.CreateProject)
			projects.PATCH("", projectHandler.UpdateProject)
			projects.DELETE("", projectHandler.DeleteProject)

			projects.GET("/collaborators", projectHandler.ListCollaborators)
			projects.POST("/collaborators", projectHandler.InviteCollaborator)
			projects.PATCH("/collaborators", projectHandler.ChangeCollaboratorRole)
			projects.DELETE("/collaborators", projectHandler.RemoveCollaborator)

			projects.GET("/boards", boardHandler.ListBoards)
			projects.POST("/boards", boardHandler.CreateBoard)
			projects.PATCH("/boards", boardHandler.RenameBoard)
			projects.DELETE("/boards", boardHandler.DeleteBoard)

			projects.GET("/cards", cardHandler.GetCards)
			projects.POST("/cards", cardHandler.CreateCard)
			projects.PATCH("/cards", cardHandler.UpdateCard)
			projects.DELETE("/cards", cardHandler.DeleteCard)

			projects.GET("/cards/responsibles", cardHandler.ListResponsibles)
			projects.POST("/cards/responsibles", cardHandler.AppointResponsible)
			projects.DELETE("/cards/responsibles", cardHandler.DismissResponsible)

			projects.GET("/tags", tagHandler.ListProjectTags)
			projects.POST("/tags", tagHandler.AddProjectTag)
			projects.PATCH("/tags", tagHandler.RenameProjectTag)
			projects.DELETE("/tags", tagHandler.DeleteProjectTag)
		}

		cards := api.Group("/cards")
		cards.Use(middleware.RequireAuth(tokens))
		{
			cards.GET("/tags", tagHandler.ListCardTags)
			cards.POST("/tags", tagHandler.AddCardTag)
			cards.PATCH("/tags", tagHandler.RenameCardTag)
			cards.DELETE("/tags", tagHandler.DeleteCardTag)
		}

		notifications := api.Group("/notification")
		notifications.Use(middleware.RequireAuth(tokens))
		{
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.DELETE("", notificationHandler.CheckNotification)
		}
	}

	// Start server
	logrus.Infof("Server starting on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}

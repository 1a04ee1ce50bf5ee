package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nonetrello/nonetrello-api/internal/auth"
	"github.com/nonetrello/nonetrello-api/internal/middleware"
	"github.com/nonetrello/nonetrello-api/internal/models"
	"github.com/nonetrello/nonetrello-api/internal/repository"
	"github.com/nonetrello/nonetrello-api/internal/services"
)

// setupRouter wires the full API against an in-memory database, the same
// way main does against a real one.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Collaborator{},
		&models.Board{},
		&models.Card{},
		&models.Responsible{},
		&models.ProjectTag{},
		&models.CardTag{},
		&models.Notification{},
	))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	collabRepo := repository.NewCollaboratorRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	cardRepo := repository.NewCardRepository(db)
	tagRepo := repository.NewTagRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	authority := services.NewAuthority(collabRepo, boardRepo, cardRepo)
	authService := services.NewAuthService(userRepo)
	projectService := services.NewProjectService(projectRepo, collabRepo, notificationRepo, authority)
	boardService := services.NewBoardService(boardRepo, authority)
	cardService := services.NewCardService(cardRepo, authority)
	tagService := services.NewTagService(tagRepo, authority)
	notificationService := services.NewNotificationService(notificationRepo)

	tokens := auth.NewManager("test-secret", 15, 30)
	authHandler := NewAuthHandler(authService, tokens, false)
	projectHandler := NewProjectHandler(projectService)
	boardHandler := NewBoardHandler(boardService)
	cardHandler := NewCardHandler(cardService)
	tagHandler := NewTagHandler(tagService)
	notificationHandler := NewNotificationHandler(notificationService)

	r := gin.New()
	api := r.Group("/api/v1")
	{
		api.POST("/users", authHandler.Register)
		api.GET("/users", middleware.RequireAuth(tokens), authHandler.GetClaims)
		api.PATCH("/users", middleware.RequireAuth(tokens), authHandler.EditUser)
		api.DELETE("/users", middleware.RequireAuth(tokens), authHandler.DeleteUser)
		api.POST("/users/auth", authHandler.Login)
		api.POST("/refresh", authHandler.Refresh)

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
	return r
}

// envelope mirrors the wire shape for decoding in assertions.
type envelope struct {
	Meta struct {
		Status   string `json:"status"`
		HTTPCode int    `json:"http_code"`
		Method   string `json:"method"`
		Message  string `json:"message"`
	} `json:"meta"`
	Data struct {
		Body json.RawMessage `json:"body"`
	} `json:"data"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func decodeBody(t *testing.T, env envelope, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data.Body, out))
}

// registerAndLogin creates an account and returns its id and access token.
func registerAndLogin(t *testing.T, r *gin.Engine, email string) (uint64, string) {
	t.Helper()

	w, _ := doJSON(t, r, http.MethodPost, "/api/v1/users", "", gin.H{
		"email":    email,
		"password": "password1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/users/auth", "", gin.H{
		"email":    email,
		"password": "password1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var login struct {
		AccessToken string `json:"access_token"`
		User        struct {
			ID uint64 `json:"id"`
		} `json:"user"`
	}
	decodeBody(t, env, &login)
	require.NotEmpty(t, login.AccessToken)
	return login.User.ID, login.AccessToken
}

// createProjectHTTP creates a project through the API and returns its id.
func createProjectHTTP(t *testing.T, r *gin.Engine, token, title string) uint64 {
	t.Helper()

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/projects", token, gin.H{"title": title})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var project struct {
		ID uint64 `json:"id"`
	}
	decodeBody(t, env, &project)
	require.NotZero(t, project.ID)
	return project.ID
}

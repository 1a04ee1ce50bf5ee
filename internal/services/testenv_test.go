package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nonetrello/nonetrello-api/internal/models"
	"github.com/nonetrello/nonetrello-api/internal/repository"
)

type serviceTestEnv struct {
	db                  *gorm.DB
	authority           *Authority
	authService         *AuthService
	projectService      *ProjectService
	boardService        *BoardService
	cardService         *CardService
	tagService          *TagService
	notificationService *NotificationService
	collabRepo          repository.CollaboratorRepository
	boardRepo           repository.BoardRepository
	notificationRepo    repository.NotificationRepository
}

func setupServiceTestEnv(t *testing.T) serviceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Collaborator{},
		&models.Board{},
		&models.Card{},
		&models.Responsible{},
		&models.ProjectTag{},
		&models.CardTag{},
		&models.Notification{},
	)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	collabRepo := repository.NewCollaboratorRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	cardRepo := repository.NewCardRepository(db)
	tagRepo := repository.NewTagRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	authority := NewAuthority(collabRepo, boardRepo, cardRepo)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return serviceTestEnv{
		db:                  db,
		authority:           authority,
		authService:         NewAuthService(userRepo),
		projectService:      NewProjectService(projectRepo, collabRepo, notificationRepo, authority),
		boardService:        NewBoardService(boardRepo, authority),
		cardService:         NewCardService(cardRepo, authority),
		tagService:          NewTagService(tagRepo, authority),
		notificationService: NewNotificationService(notificationRepo),
		collabRepo:          collabRepo,
		boardRepo:           boardRepo,
		notificationRepo:    notificationRepo,
	}
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        email,
		PasswordHash: "hashed",
		Role:         models.GlobalRoleNormal,
		Version:      1,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// createTestProject creates a project owned by ownerID through the service,
// so the owner collaborator and default boards exist too.
func createTestProject(t *testing.T, env serviceTestEnv, ownerID uint64, title string) *models.Project {
	t.Helper()
	project, err := env.projectService.CreateProject(CreateProjectInput{
		Title:     title,
		CreatorID: ownerID,
	})
	require.NoError(t, err)
	return project
}

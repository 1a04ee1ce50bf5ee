package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/nonetrello/nonetrello-api/internal/models"
)

func TestCreateProject(t *testing.T) {
	r := setupRouter(t)
	_, token := registerAndLogin(t, r, "owner@example.com")

	projectID := createProjectHTTP(t, r, token, "my project")

	// Fetch-by-id works without a session
	w, env := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/projects?id=%d", projectID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var project struct {
		Title string `json:"title"`
	}
	decodeBody(t, env, &project)
	require.Equal(t, "my project", project.Title)

	// Listing memberships requires one
	w, _ = doJSON(t, r, http.MethodGet, "/api/v1/projects", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/api/v1/projects", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "my project")

	// The default boards came with the project
	w, _ = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/projects/boards?project_id=%d", projectID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	for _, title := range models.DefaultBoardTitles {
		require.Contains(t, w.Body.String(), title)
	}
}

func TestCollaboratorFlow(t *testing.T) {
	r := setupRouter(t)

	ownerID, ownerToken := registerAndLogin(t, r, "owner@example.com")
	adminID, adminToken := registerAndLogin(t, r, "admin@example.com")
	outsiderID, _ := registerAndLogin(t, r, "outsider@example.com")
	projectID := createProjectHTTP(t, r, ownerToken, "shared")

	// Owner invites an Admin
	w, _ := doJSON(t, r, http.MethodPost, "/api/v1/projects/collaborators", ownerToken, gin.H{
		"project_id": projectID,
		"user_id":    adminID,
		"role":       models.RoleAdmin,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Re-inviting conflicts
	w, _ = doJSON(t, r, http.MethodPost, "/api/v1/projects/collaborators", ownerToken, gin.H{
		"project_id": projectID,
		"user_id":    adminID,
		"role":       models.RoleMember,
	})
	require.Equal(t, http.StatusConflict, w.Code)

	// The Admin cannot hand out Owner
	w, _ = doJSON(t, r, http.MethodPost, "/api/v1/projects/collaborators", adminToken, gin.H{
		"project_id": projectID,
		"user_id":    outsiderID,
		"role":       models.RoleOwner,
	})
	require.Equal(t, http.StatusForbidden, w.Code)

	// An out-of-range role is malformed, not forbidden
	w, _ = doJSON(t, r, http.MethodPost, "/api/v1/projects/collaborators", ownerToken, gin.H{
		"project_id": projectID,
		"user_id":    outsiderID,
		"role":       7,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Changing a stranger's role is a missing target
	w, _ = doJSON(t, r, http.MethodPatch, "/api/v1/projects/collaborators", ownerToken, gin.H{
		"project_id": projectID,
		"user_id":    outsiderID,
		"role":       models.RoleMember,
	})
	require.Equal(t, http.StatusNotFound, w.Code)

	// Demotion by the Owner works; the demoted Admin loses write access
	w, _ = doJSON(t, r, http.MethodPatch, "/api/v1/projects/collaborators", ownerToken, gin.H{
		"project_id": projectID,
		"user_id":    adminID,
		"role":       models.RoleMember,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, _ = doJSON(t, r, http.MethodPost, "/api/v1/projects/boards", adminToken, gin.H{
		"project_id": projectID,
		"title":      "Extras",
	})
	require.Equal(t, http.StatusForbidden, w.Code)

	// Members still read
	w, _ = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/projects/collaborators?project_id=%d", projectID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Removing the Owner is out of anyone's reach
	w, _ = doJSON(t, r, http.MethodDelete, "/api/v1/projects/collaborators", adminToken, gin.H{
		"project_id": projectID,
		"user_id":    ownerID,
	})
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteProject_OwnerOnly(t *testing.T) {
	r := setupRouter(t)

	_, ownerToken := registerAndLogin(t, r, "owner@example.com")
	adminID, adminToken := registerAndLogin(t, r, "admin@example.com")
	projectID := createProjectHTTP(t, r, ownerToken, "doomed")

	w, _ := doJSON(t, r, http.MethodPost, "/api/v1/projects/collaborators", ownerToken, gin.H{
		"project_id": projectID,
		"user_id":    adminID,
		"role":       models.RoleAdmin,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = doJSON(t, r, http.MethodDelete, "/api/v1/projects", adminToken, gin.H{
		"project_id": projectID,
	})
	require.Equal(t, http.StatusForbidden, w.Code)

	w, _ = doJSON(t, r, http.MethodDelete, "/api/v1/projects", ownerToken, gin.H{
		"project_id": projectID,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/projects?id=%d", projectID), "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestNotificationEndpoints(t *testing.T) {
	r := setupRouter(t)

	_, ownerToken := registerAndLogin(t, r, "owner@example.com")
	inviteeID, inviteeToken := registerAndLogin(t, r, "invitee@example.com")
	projectID := createProjectHTTP(t, r, ownerToken, "with inbox")

	w, _ := doJSON(t, r, http.MethodPost, "/api/v1/projects/collaborators", ownerToken, gin.H{
		"project_id": projectID,
		"user_id":    inviteeID,
		"role":       models.RoleMember,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := doJSON(t, r, http.MethodGet, "/api/v1/notification", inviteeToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "with inbox")

	var body struct {
		Notifications []struct {
			ID uint64 `json:"id"`
		} `json:"notifications"`
	}
	decodeBody(t, env, &body)
	require.Len(t, body.Notifications, 1)

	// Someone else's inbox entry cannot be checked off
	w, _ = doJSON(t, r, http.MethodDelete, "/api/v1/notification", ownerToken, gin.H{
		"notification_id": body.Notifications[0].ID,
	})
	require.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, r, http.MethodDelete, "/api/v1/notification", inviteeToken, gin.H{
		"notification_id": body.Notifications[0].ID,
	})
	require.Equal(t, http.StatusOK, w.Code)
}

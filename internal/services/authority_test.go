package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nonetrello/nonetrello-api/internal/models"
)

func TestCheckInvite(t *testing.T) {
	tests := []struct {
		name      string
		actorRole models.Role
		desired   models.Role
		wantErr   error
	}{
		{"owner invites member", models.RoleOwner, models.RoleMember, nil},
		{"owner invites admin", models.RoleOwner, models.RoleAdmin, nil},
		{"owner invites blocked", models.RoleOwner, models.RoleBlocked, nil},
		{"admin invites member", models.RoleAdmin, models.RoleMember, nil},
		{"admin invites admin", models.RoleAdmin, models.RoleAdmin, nil},

		{"owner cannot grant owner", models.RoleOwner, models.RoleOwner, ErrCannotAddStronger},
		{"admin cannot grant owner", models.RoleAdmin, models.RoleOwner, ErrCannotAddStronger},
		{"member cannot invite", models.RoleMember, models.RoleMember, ErrAdminRequired},
		{"blocked cannot invite", models.RoleBlocked, models.RoleMember, ErrActorBlocked},
		{"negative role rejected", models.RoleOwner, models.Role(-1), ErrRoleOutOfRange},
		{"role above owner rejected", models.RoleOwner, models.Role(4), ErrRoleOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckInvite(tt.actorRole, tt.desired)
			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestCheckRoleChange(t *testing.T) {
	tests := []struct {
		name       string
		actorRole  models.Role
		targetRole models.Role
		newRole    models.Role
		wantErr    error
	}{
		{"owner promotes member to admin", models.RoleOwner, models.RoleMember, models.RoleAdmin, nil},
		{"owner demotes admin to member", models.RoleOwner, models.RoleAdmin, models.RoleMember, nil},
		{"owner blocks member", models.RoleOwner, models.RoleMember, models.RoleBlocked, nil},
		{"admin promotes blocked to member", models.RoleAdmin, models.RoleBlocked, models.RoleMember, nil},
		{"admin blocks member", models.RoleAdmin, models.RoleMember, models.RoleBlocked, nil},

		{"owner cannot grant owner", models.RoleOwner, models.RoleMember, models.RoleOwner, ErrCannotGrantPeer},
		{"admin cannot promote to admin", models.RoleAdmin, models.RoleMember, models.RoleAdmin, ErrCannotGrantPeer},
		{"admin cannot act on admin", models.RoleAdmin, models.RoleAdmin, models.RoleMember, ErrCannotActOnPeer},
		{"admin cannot act on owner", models.RoleAdmin, models.RoleOwner, models.RoleMember, ErrCannotActOnPeer},
		{"member cannot act on member", models.RoleMember, models.RoleMember, models.RoleBlocked, ErrCannotActOnPeer},
		{"blocked cannot act at all", models.RoleBlocked, models.RoleMember, models.RoleBlocked, ErrActorBlocked},
		{"negative role rejected", models.RoleOwner, models.RoleMember, models.Role(-1), ErrRoleOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckRoleChange(tt.actorRole, tt.targetRole, tt.newRole)
			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

// A stronger collaborator can always demote a strictly weaker one, and the
// weaker one can never touch the stronger. Exhaustive over the scale.
func TestCheckRoleChange_StrictOrdering(t *testing.T) {
	roles := []models.Role{models.RoleBlocked, models.RoleMember, models.RoleAdmin, models.RoleOwner}
	for _, actor := range roles {
		for _, target := range roles {
			if actor > target && actor > models.RoleBlocked {
				require.NoError(t, CheckRoleChange(actor, target, models.RoleBlocked),
					"actor %v should demote target %v", actor, target)
			}
			if actor <= target {
				require.Error(t, CheckRoleChange(actor, target, models.RoleBlocked),
					"actor %v must not act on target %v", actor, target)
			}
		}
	}
}

func TestCheckRemoval(t *testing.T) {
	tests := []struct {
		name       string
		actorRole  models.Role
		targetRole models.Role
		wantErr    error
	}{
		{"owner removes admin", models.RoleOwner, models.RoleAdmin, nil},
		{"owner removes member", models.RoleOwner, models.RoleMember, nil},
		{"admin removes member", models.RoleAdmin, models.RoleMember, nil},

		{"admin cannot remove owner", models.RoleAdmin, models.RoleOwner, ErrCannotActOnPeer},
		{"admin cannot remove admin", models.RoleAdmin, models.RoleAdmin, ErrCannotActOnPeer},
		{"member cannot remove member", models.RoleMember, models.RoleMember, ErrCannotActOnPeer},
		{"blocked actor denied", models.RoleBlocked, models.RoleMember, ErrNotInProject},
		{"blocked target denied", models.RoleOwner, models.RoleBlocked, ErrNotInProject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckRemoval(tt.actorRole, tt.targetRole)
			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestAuthority_RoleResolution(t *testing.T) {
	env := setupServiceTestEnv(t)

	owner := createTestUser(t, env.db, "owner@x.com")
	stranger := createTestUser(t, env.db, "stranger@x.com")
	project := createTestProject(t, env, owner.ID, "resolve")

	role, err := env.authority.RoleOf(project.ID, owner.ID)
	require.NoError(t, err)
	require.Equal(t, models.RoleOwner, role)

	// Strict variant: absence is an error
	_, err = env.authority.RoleOf(project.ID, stranger.ID)
	require.ErrorIs(t, err, ErrNotCollaborator)

	// Lenient variant: absence behaves like blocked
	role, err = env.authority.RoleOrBlocked(project.ID, stranger.ID)
	require.NoError(t, err)
	require.Equal(t, models.RoleBlocked, role)

	isMember, err := env.authority.IsMember(project.ID, owner.ID)
	require.NoError(t, err)
	require.True(t, isMember)

	isMember, err = env.authority.IsMember(project.ID, stranger.ID)
	require.NoError(t, err)
	require.False(t, isMember)
}

func TestAuthority_CanEditResolvesOwningProject(t *testing.T) {
	env := setupServiceTestEnv(t)

	owner := createTestUser(t, env.db, "owner@x.com")
	member := createTestUser(t, env.db, "member@x.com")
	project := createTestProject(t, env, owner.ID, "editable")

	_, err := env.projectService.InviteCollaborator(InviteCollaboratorInput{
		ActorID:   owner.ID,
		ProjectID: project.ID,
		UserID:    member.ID,
		Role:      models.RoleMember,
	})
	require.NoError(t, err)

	boards, err := env.boardService.ListBoards(owner.ID, project.ID)
	require.NoError(t, err)
	require.Len(t, boards, 4)

	card, err := env.cardService.CreateCard(CreateCardInput{
		ActorID: owner.ID,
		BoardID: boards[0].ID,
		Title:   "a card",
	})
	require.NoError(t, err)

	// Owner edits through board and card indirection
	require.NoError(t, env.authority.CanEditBoard(owner.ID, boards[0].ID))
	require.NoError(t, env.authority.CanEditCard(owner.ID, card.ID))

	// A plain member may not edit either
	require.ErrorIs(t, env.authority.CanEditBoard(member.ID, boards[0].ID), ErrAdminRequired)
	require.ErrorIs(t, env.authority.CanEditCard(member.ID, card.ID), ErrAdminRequired)

	// Unknown entities resolve to NotFound, not Forbidden
	require.ErrorIs(t, env.authority.CanEditBoard(owner.ID, 9999), ErrBoardNotFound)
	require.ErrorIs(t, env.authority.CanEditCard(owner.ID, 9999), ErrCardNotFound)
}

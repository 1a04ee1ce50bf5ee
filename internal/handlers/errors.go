package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nonetrello/nonetrello-api/internal/response"
	"github.com/nonetrello/nonetrello-api/internal/services"
)

// respondServiceError is the single place where typed service failures turn
// into wire responses. Anything unrecognized is logged and reported as a
// generic server error so store internals never leak to the client.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrRoleOutOfRange),
		errors.Is(err, services.ErrInvalidPassword),
		errors.Is(err, services.ErrInvalidGlobalRole),
		errors.Is(err, services.ErrNothingToEdit),
		errors.Is(err, services.ErrInvalidProjectTitle),
		errors.Is(err, services.ErrInvalidDescription),
		errors.Is(err, services.ErrInvalidBoardTitle),
		errors.Is(err, services.ErrInvalidCardTitle),
		errors.Is(err, services.ErrInvalidCardAbout),
		errors.Is(err, services.ErrInvalidTag):
		response.BadRequest(c, err.Error())

	case errors.Is(err, services.ErrActorBlocked),
		errors.Is(err, services.ErrAdminRequired),
		errors.Is(err, services.ErrCannotAddStronger),
		errors.Is(err, services.ErrCannotActOnPeer),
		errors.Is(err, services.ErrCannotGrantPeer),
		errors.Is(err, services.ErrNotInProject),
		errors.Is(err, services.ErrGlobalRoleTooLow),
		errors.Is(err, services.ErrWrongPassword):
		response.Forbidden(c, err.Error())

	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrBoardNotFound),
		errors.Is(err, services.ErrCardNotFound),
		errors.Is(err, services.ErrNotCollaborator),
		errors.Is(err, services.ErrResponsibleNotFound),
		errors.Is(err, services.ErrTagNotFound),
		errors.Is(err, services.ErrNotificationNotFound):
		response.NotFound(c, err.Error())

	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrCollaboratorExists),
		errors.Is(err, services.ErrCollaboratorConflict):
		response.Conflict(c, err.Error())

	case errors.Is(err, services.ErrStaleRefreshToken):
		response.Unauthorized(c, err.Error())

	default:
		logrus.WithError(err).Error("Unhandled service error")
		response.InternalError(c, "")
	}
}

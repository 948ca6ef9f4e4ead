package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	apierrors "github.com/dafoundation/disaster-relief-api/internal/errors"
	"github.com/dafoundation/disaster-relief-api/internal/flash"
	"github.com/dafoundation/disaster-relief-api/internal/policy"
	"github.com/dafoundation/disaster-relief-api/internal/services"
)

// respondServiceError maps service sentinels onto the web surface.
// Authorization failures become redirects with a flash message, never
// a bare failure page; indexPath is where unauthorized callers land.
func respondServiceError(c *gin.Context, err error, indexPath string) {
	switch {
	case errors.Is(err, policy.ErrNotAuthenticated):
		flash.Error(c, "You must be signed in to do that.")
		c.Redirect(http.StatusSeeOther, "/auth/signin")

	case errors.Is(err, policy.ErrNotOwner):
		flash.Error(c, "You do not have permission to access that record.")
		c.Redirect(http.StatusSeeOther, indexPath)

	case errors.Is(err, services.ErrReportNotFound),
		errors.Is(err, services.ErrDonationNotFound),
		errors.Is(err, services.ErrVolunteerNotFound),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrMessageNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())

	case errors.Is(err, services.ErrTaskNotAvailable),
		errors.Is(err, services.ErrTaskFull),
		errors.Is(err, services.ErrNotAssigned),
		errors.Is(err, services.ErrAlreadyJoined):
		flash.Error(c, err.Error())
		c.Redirect(http.StatusSeeOther, "/taskbrowse")

	case errors.Is(err, services.ErrDonationClosed),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrDonationNotEditable):
		flash.Error(c, err.Error())
		c.Redirect(http.StatusSeeOther, indexPath)

	case errors.Is(err, services.ErrConcurrencyConflict):
		apierrors.Conflict(c, err.Error())

	case errors.Is(err, services.ErrReportFieldsRequired),
		errors.Is(err, services.ErrResourceTypeRequired),
		errors.Is(err, services.ErrQuantityOutOfRange),
		errors.Is(err, services.ErrVolunteerTaskMissing),
		errors.Is(err, services.ErrTaskTitleRequired),
		errors.Is(err, services.ErrInvalidTaskStatus),
		errors.Is(err, services.ErrMessageFieldsRequired),
		errors.Is(err, services.ErrInvalidMessageType),
		errors.Is(err, services.ErrInvalidStatus):
		apierrors.BadRequest(c, err.Error())

	default:
		logrus.WithError(err).Error("request failed")
		apierrors.InternalError(c, "")
	}
}

// respondBindError re-presents a rejected payload with field errors so
// the caller's in-flight input is never lost.
func respondBindError(c *gin.Context, err error, input interface{}) {
	apierrors.BadRequestWithDetails(c, err.Error(), input)
}

// parseID reads the numeric :id route parameter.
func parseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid id")
		return 0, false
	}
	return id, true
}

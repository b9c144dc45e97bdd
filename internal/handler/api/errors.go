package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"campus-booking/internal/domain/rating"
	"campus-booking/internal/handler/httperr"
	"campus-booking/internal/infra"
	"campus-booking/internal/usecase/commands"
	"campus-booking/internal/usecase/queries"
)

// respondError translates usecase sentinels into the booking error
// taxonomy: 404 for missing things, 403 for ownership, 409 for state
// conflicts, 422 for domain rule violations, 400 for bad input.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrBookingNotFound),
		errors.Is(err, commands.ErrRoomNotFound),
		errors.Is(err, commands.ErrSlotNotFound),
		errors.Is(err, commands.ErrUserNotFound),
		errors.Is(err, commands.ErrMemberNotFound),
		errors.Is(err, commands.ErrNotificationNotFound),
		infra.IsKind(err, infra.KindNotFound):
		httperr.Abort(c, http.StatusNotFound, err, "Not found")

	case errors.Is(err, commands.ErrNotBookingOwner),
		errors.Is(err, commands.ErrNotAllowedOnBooking),
		errors.Is(err, queries.ErrBookingAccessDenied):
		httperr.Abort(c, http.StatusForbidden, err, "Not allowed")

	case errors.Is(err, commands.ErrSlotUnavailable):
		httperr.Abort(c, http.StatusConflict, err, "Time slot is not available")

	case errors.Is(err, commands.ErrDraftExists):
		httperr.Abort(c, http.StatusConflict, err, "An unsubmitted draft already exists")

	case errors.Is(err, commands.ErrStateChanged):
		httperr.Abort(c, http.StatusConflict, err, "Booking was modified concurrently, retry")

	case errors.Is(err, commands.ErrAlreadyMember):
		httperr.Abort(c, http.StatusConflict, err, "User is already a member")

	case errors.Is(err, commands.ErrBookingNotEditable),
		errors.Is(err, commands.ErrCannotRemoveOwner):
		httperr.Abort(c, http.StatusConflict, err, "Booking state does not allow this change")

	case errors.Is(err, rating.ErrAlreadyRated):
		httperr.Abort(c, http.StatusConflict, err, "Booking already rated")

	case errors.Is(err, commands.ErrUserNotVerified):
		httperr.Abort(c, http.StatusUnprocessableEntity, err, "User is not verified")

	case errors.Is(err, commands.ErrRoomInactive):
		httperr.Abort(c, http.StatusUnprocessableEntity, err, "Room is not active")

	case errors.Is(err, commands.ErrDomainValidation):
		httperr.Abort(c, http.StatusUnprocessableEntity, err, "Domain validation failed")

	case errors.Is(err, commands.ErrDateInPast),
		errors.Is(err, commands.ErrSlotElapsed),
		errors.Is(err, queries.ErrInvalidStatusFilter):
		httperr.Abort(c, http.StatusBadRequest, err, "Invalid booking parameters")

	default:
		httperr.Abort(c, http.StatusInternalServerError, err, "Internal server error")
	}
}

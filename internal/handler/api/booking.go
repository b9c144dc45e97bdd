package api

import (
	"net/http"
	"strconv"
	"time"

	reqdto "campus-booking/internal/handler/dto/request"
	resdto "campus-booking/internal/handler/dto/response"
	"campus-booking/internal/handler/middleware"
	"campus-booking/internal/pkg/shortcode"
	"campus-booking/internal/usecase/commands"
	"campus-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	memberCommands  commands.MemberCommands
	contentCommands commands.ContentCommands
	bookingQueries  queries.BookingQueries
}

func NewBookingHandler(
	bookingCommands commands.BookingCommands,
	memberCommands commands.MemberCommands,
	contentCommands commands.ContentCommands,
	bookingQueries queries.BookingQueries,
) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		memberCommands:  memberCommands,
		contentCommands: contentCommands,
		bookingQueries:  bookingQueries,
	}
}

// @Summary Initiate booking draft
// @Description Create an unsubmitted booking draft for a room and slot
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.InitiateBookingRequest true "Booking draft"
// @Success 201 {object} resdto.DraftResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) Initiate(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.InitiateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	snap, err := h.bookingCommands.Initiate(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingSnapshot(snap))
}

// @Summary Get booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	role, _ := middleware.GetUserRole(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID format"})
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), userID, role, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Look up booking by code
// @Description Admin lookup used when scanning the booking code at the door
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param code path string true "Booking code"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} map[string]string
// @Router /bookings/code/{code} [get]
func (h *BookingHandler) GetByCode(c *gin.Context) {
	code := c.Param("code")
	if !shortcode.Valid(code) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	view, err := h.bookingQueries.GetByCode(c.Request.Context(), code)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List own bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param status query []string false "Status filter"
// @Param limit query int false "Max results"
// @Success 200 {array} resdto.BookingListResponse
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	items, err := h.bookingQueries.ListByUser(c.Request.Context(), userID, c.QueryArray("status"), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]*resdto.BookingListResponse, len(items))
	for i, item := range items {
		response[i] = resdto.FromBookingListItem(item)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Available slots for a room
// @Description Slots of the catalog that do not conflict with any pending or active booking on that date
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {array} resdto.SlotResponse
// @Failure 404 {object} map[string]string
// @Router /rooms/{id}/availability [get]
func (h *BookingHandler) Availability(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID format"})
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	slots, err := h.bookingQueries.AvailableSlots(c.Request.Context(), roomID, date)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromSlotViews(slots))
}

// @Summary Submit booking
// @Description Fan the draft out into pending bookings, one per requested slot, blocking the slots and queuing their expiry checks
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.SubmitBookingRequest true "Submission"
// @Success 201 {array} resdto.DraftResponse
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/submit [post]
func (h *BookingHandler) Submit(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID format"})
		return
	}

	var req reqdto.SubmitBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	created, err := h.bookingCommands.Submit(c.Request.Context(), userID, id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]*resdto.DraftResponse, len(created))
	for i, snap := range created {
		response[i] = resdto.FromBookingSnapshot(snap)
	}
	c.JSON(http.StatusCreated, response)
}

// @Summary Approve booking
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Router /bookings/{id}/approve [post]
func (h *BookingHandler) Approve(c *gin.Context) {
	h.adminBookingAction(c, func(ctx *gin.Context, id uuid.UUID) error {
		return h.bookingCommands.Approve(ctx.Request.Context(), id)
	})
}

// @Summary Reject booking
// @Tags bookings
// @Accept json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.RejectBookingRequest true "Rejection"
// @Success 204 "No Content"
// @Router /bookings/{id}/reject [post]
func (h *BookingHandler) Reject(c *gin.Context) {
	h.adminBookingAction(c, func(ctx *gin.Context, id uuid.UUID) error {
		var req reqdto.RejectBookingRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return errHandled
		}
		return h.bookingCommands.Reject(ctx.Request.Context(), id, req)
	})
}

// @Summary Cancel booking
// @Description Owner or admin cancels; queued reminders are revoked
// @Tags bookings
// @Accept json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.CancelBookingRequest true "Cancellation"
// @Success 204 "No Content"
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	h.ownBookingAction(c, func(ctx *gin.Context, userID, id uuid.UUID) error {
		var req reqdto.CancelBookingRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return errHandled
		}
		return h.bookingCommands.Cancel(ctx.Request.Context(), userID, middleware.IsAdmin(ctx), id, req)
	})
}

// @Summary Reschedule booking
// @Description Move a pending or active booking to another slot or date; it comes back active with rebuilt reminders
// @Tags bookings
// @Accept json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.RescheduleBookingRequest true "New slot"
// @Success 204 "No Content"
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/reschedule [post]
func (h *BookingHandler) Reschedule(c *gin.Context) {
	h.ownBookingAction(c, func(ctx *gin.Context, userID, id uuid.UUID) error {
		var req reqdto.RescheduleBookingRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return errHandled
		}
		return h.bookingCommands.Reschedule(ctx.Request.Context(), userID, id, req)
	})
}

// @Summary Delete booking draft
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204 "No Content"
// @Router /bookings/{id} [delete]
func (h *BookingHandler) DeleteDraft(c *gin.Context) {
	h.ownBookingAction(c, func(ctx *gin.Context, userID, id uuid.UUID) error {
		return h.bookingCommands.DeleteDraft(ctx.Request.Context(), userID, id)
	})
}

// @Summary Complete booking
// @Description Admin checkout; no-op when the booking is not active
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204 "No Content"
// @Router /bookings/{id}/complete [post]
func (h *BookingHandler) Complete(c *gin.Context) {
	h.adminBookingAction(c, func(ctx *gin.Context, id uuid.UUID) error {
		return h.bookingCommands.CompleteIfActive(ctx.Request.Context(), id)
	})
}

// @Summary Add booking member
// @Tags bookings
// @Accept json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.AddMemberRequest true "Member email"
// @Success 204 "No Content"
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/members [post]
func (h *BookingHandler) AddMember(c *gin.Context) {
	h.ownBookingAction(c, func(ctx *gin.Context, userID, id uuid.UUID) error {
		var req reqdto.AddMemberRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return errHandled
		}
		return h.memberCommands.AddMember(ctx.Request.Context(), userID, id, req)
	})
}

// @Summary Remove booking member
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param userId path string true "Member user ID"
// @Success 204 "No Content"
// @Router /bookings/{id}/members/{userId} [delete]
func (h *BookingHandler) RemoveMember(c *gin.Context) {
	h.ownBookingAction(c, func(ctx *gin.Context, userID, id uuid.UUID) error {
		memberID, err := uuid.Parse(ctx.Param("userId"))
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
			return errHandled
		}
		return h.memberCommands.RemoveMember(ctx.Request.Context(), userID, id, memberID)
	})
}

// @Summary Rate booking
// @Description Rate the room after the booking completed
// @Tags bookings
// @Accept json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.RateBookingRequest true "Rating"
// @Success 204 "No Content"
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/rating [post]
func (h *BookingHandler) Rate(c *gin.Context) {
	h.ownBookingAction(c, func(ctx *gin.Context, userID, id uuid.UUID) error {
		var req reqdto.RateBookingRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return errHandled
		}
		return h.contentCommands.RateBooking(ctx.Request.Context(), userID, id, req)
	})
}

// errHandled signals that the action already wrote a response.
var errHandled = errHandledType{}

type errHandledType struct{}

func (errHandledType) Error() string { return "handled" }

func (h *BookingHandler) ownBookingAction(c *gin.Context, fn func(ctx *gin.Context, userID, id uuid.UUID) error) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID format"})
		return
	}

	if err := fn(c, userID, id); err != nil {
		if err != errHandled {
			respondError(c, err)
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) adminBookingAction(c *gin.Context, fn func(ctx *gin.Context, id uuid.UUID) error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID format"})
		return
	}

	if err := fn(c, id); err != nil {
		if err != errHandled {
			respondError(c, err)
		}
		return
	}
	c.Status(http.StatusNoContent)
}

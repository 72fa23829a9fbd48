package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glowbook/artist-scheduler/internal/httperr"
	"github.com/glowbook/artist-scheduler/internal/httpresp"
	"github.com/glowbook/artist-scheduler/internal/middleware"
	"github.com/glowbook/artist-scheduler/internal/models"
	"github.com/glowbook/artist-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER (client side)
// ======================================================

type BookingHandler struct {
	db        *gorm.DB
	create    *booking.CreateBooking
	cancelOwn *booking.CancelOwnBooking
}

func NewBookingHandler(
	db *gorm.DB,
	create *booking.CreateBooking,
	cancelOwn *booking.CancelOwnBooking,
) *BookingHandler {
	return &BookingHandler{
		db:        db,
		create:    create,
		cancelOwn: cancelOwn,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ArtistID  uint   `json:"artist_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	Time      string `json:"time" binding:"required"` // HH:mm
	Notes     string `json:"notes"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	clientID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), booking.CreateBookingInput{
		ClientID:  clientID,
		ArtistID:  req.ArtistID,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Time:      req.Time,
		Notes:     req.Notes,
	})

	if err != nil {
		if httperr.IsBusiness(err, "time_conflict") {
			httperr.Conflict(c, "time_conflict", "That time was just taken, please pick another slot.")
			return
		}
		if httperr.WriteBusiness(c, err, "Could not create booking.") {
			return
		}
		httperr.Internal(c, "failed_to_create_booking", "Could not create booking.")
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// MY BOOKINGS
// ======================================================

func (h *BookingHandler) ListMine(c *gin.Context) {
	clientID := c.MustGet(middleware.ContextUserID).(uint)

	var bookings []models.Appointment
	if err := h.db.
		Preload("Artist").
		Preload("Service").
		Where("client_id = ?", clientID).
		Order("start_time DESC").
		Find(&bookings).Error; err != nil {

		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	httpresp.List(c, bookings)
}

// ======================================================
// CANCEL (own, pending only)
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	clientID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id.")
		return
	}

	ap, err := h.cancelOwn.Execute(c.Request.Context(), clientID, uint(id))
	if err != nil {
		if httperr.WriteBusiness(c, err, "Booking cannot be cancelled.") {
			return
		}
		httperr.Internal(c, "failed_to_cancel_booking", "Could not cancel booking.")
		return
	}

	c.JSON(http.StatusOK, ap)
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glowbook/artist-scheduler/internal/audit"
	domain "github.com/glowbook/artist-scheduler/internal/domain/appointment"
	"github.com/glowbook/artist-scheduler/internal/httperr"
	"github.com/glowbook/artist-scheduler/internal/middleware"
	"github.com/glowbook/artist-scheduler/internal/models"
	"github.com/glowbook/artist-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER (artist side)
// ======================================================

type AppointmentHandler struct {
	db           *gorm.DB
	audit        *audit.Dispatcher
	changeStatus *booking.ChangeStatus
	listByDate   *booking.ListAppointmentsByDate
	listByMonth  *booking.ListAppointmentsByMonth
}

func NewAppointmentHandler(
	db *gorm.DB,
	dispatcher *audit.Dispatcher,
	changeStatus *booking.ChangeStatus,
	listByDate *booking.ListAppointmentsByDate,
	listByMonth *booking.ListAppointmentsByMonth,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:           db,
		audit:        dispatcher,
		changeStatus: changeStatus,
		listByDate:   listByDate,
		listByMonth:  listByMonth,
	}
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	artistID := c.MustGet(middleware.ContextUserID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	var artist models.Profile
	if err := h.db.First(&artist, artistID).Error; err != nil {
		httperr.Internal(c, "artist_not_found", "Artist not found.")
		return
	}

	date, err := parseDateForArtist(&artist, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	out, err := h.listByDate.Execute(c.Request.Context(), artistID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	c.JSON(http.StatusOK, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	artistID := c.MustGet(middleware.ContextUserID).(uint)

	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Year and month are required.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Invalid year.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Invalid month.")
		return
	}

	out, err := h.listByMonth.Execute(c.Request.Context(), artistID, year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"appointments": out,
	})
}

// ======================================================
// STATUS TRANSITIONS
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.transition(c, domain.StatusConfirmed, "Appointment cannot be confirmed.")
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, domain.StatusCompleted, "Appointment cannot be completed.")
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, domain.StatusCancelled, "Appointment cannot be cancelled.")
}

func (h *AppointmentHandler) transition(c *gin.Context, target domain.Status, message string) {
	artistID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Invalid appointment id.")
		return
	}

	ap, err := h.changeStatus.Execute(c.Request.Context(), artistID, uint(id), target)
	if err != nil {
		if httperr.WriteBusiness(c, err, message) {
			return
		}
		httperr.Internal(c, "failed_to_update_appointment", "Could not update appointment.")
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// PAYMENT STATUS (independent axis, no processing)
// ======================================================

type UpdatePaymentRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

func (h *AppointmentHandler) UpdatePayment(c *gin.Context) {
	artistID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var req UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	if !domain.ValidPaymentStatus(req.PaymentStatus) {
		httperr.BadRequest(c, "invalid_payment_status", "Unknown payment status.")
		return
	}

	var ap models.Appointment
	if err := h.db.
		Where("id = ? AND artist_id = ?", id, artistID).
		First(&ap).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}

	ap.PaymentStatus = req.PaymentStatus
	if err := h.db.Save(&ap).Error; err != nil {
		httperr.Internal(c, "failed_to_update_payment", "Could not update payment status.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &artistID,
		Action:   "payment_status_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"payment_status": ap.PaymentStatus},
	})

	c.JSON(http.StatusOK, ap)
}

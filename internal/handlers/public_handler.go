package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/glowbook/artist-scheduler/internal/domain/appointment"
	"github.com/glowbook/artist-scheduler/internal/httperr"
	"github.com/glowbook/artist-scheduler/internal/httpresp"
	"github.com/glowbook/artist-scheduler/internal/models"
	"github.com/glowbook/artist-scheduler/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db           *gorm.DB
	availability *booking.GetAvailability
}

func NewPublicHandler(db *gorm.DB, availability *booking.GetAvailability) *PublicHandler {
	return &PublicHandler{
		db:           db,
		availability: availability,
	}
}

////////////////////////////////////////////////////////
// ARTISTS
////////////////////////////////////////////////////////

func (h *PublicHandler) ListArtists(c *gin.Context) {
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.Where("role = ?", models.RoleArtist)
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(specialty) LIKE ?", like, like)
	}

	var artists []models.Profile
	if err := q.Order("id ASC").Find(&artists).Error; err != nil {
		httperr.Internal(c, "failed_to_list_artists", "Could not list artists.")
		return
	}

	httpresp.List(c, artists)
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	artistID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_artist_id", "Invalid artist id.")
		return
	}

	var artist models.Profile
	if err := h.db.
		Where("id = ? AND role = ?", artistID, models.RoleArtist).
		First(&artist).Error; err != nil {
		httperr.NotFound(c, "artist_not_found", "Artist not found.")
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.Where("artist_id = ? AND active = true", artist.ID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"artist":   publicProfile(&artist),
		"services": services,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	artistID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_artist_id", "Invalid artist id.")
		return
	}

	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Date and service are required.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service id.")
		return
	}

	var artist models.Profile
	if err := h.db.
		Where("id = ? AND role = ?", artistID, models.RoleArtist).
		First(&artist).Error; err != nil {
		httperr.NotFound(c, "artist_not_found", "Artist not found.")
		return
	}

	date, err := parseDateForArtist(&artist, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	slots, err := h.availability.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			ArtistID:  artist.ID,
			ServiceID: uint(serviceID),
			Date:      date,
		},
	)

	if err != nil {
		if httperr.WriteBusiness(c, err, "Invalid service.") {
			return
		}
		httperr.Internal(c, "availability_failed", "Could not compute availability.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

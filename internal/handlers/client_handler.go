package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glowbook/artist-scheduler/internal/middleware"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

// ClientSummary is a read-side projection over the booking history.
// The roster is always derived from appointments at query time; there
// is no persisted client-list entity to drift out of sync.
type ClientSummary struct {
	ID            uint       `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	TotalBookings int        `json:"total_bookings"`
	TotalSpent    float64    `json:"total_spent"`
	LastVisit     *time.Time `json:"last_visit"`
}

func (h *ClientHandler) List(c *gin.Context) {
	artistID := c.MustGet(middleware.ContextUserID).(uint)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	sql := `
        SELECT
            p.id,
            p.name,
            p.email,
            p.phone,
            COUNT(a.id) AS total_bookings,
            COALESCE(SUM(a.total_amount) FILTER (WHERE a.status = 'completed'), 0) AS total_spent,
            MAX(a.start_time) FILTER (WHERE a.status = 'completed') AS last_visit
        FROM appointments a
        JOIN profiles p ON p.id = a.client_id
        WHERE a.artist_id = ?
    `
	args := []any{artistID}

	if query != "" {
		sql += ` AND (LOWER(p.name) LIKE ? OR LOWER(p.email) LIKE ?)`
		like := "%" + query + "%"
		args = append(args, like, like)
	}

	sql += `
        GROUP BY p.id, p.name, p.email, p.phone
        ORDER BY MAX(a.start_time) DESC
    `

	var clients []ClientSummary
	if err := h.db.Raw(sql, args...).Scan(&clients).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_clients"})
		return
	}

	c.JSON(http.StatusOK, clients)
}

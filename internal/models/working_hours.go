package models

import "time"

// WorkingHours is one weekday row of an artist's schedule. Artists
// without any rows fall back to the default 09:00-18:00 window.
type WorkingHours struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ArtistID uint `gorm:"index" json:"artist_id"`

	Weekday int `json:"weekday"`

	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Active    bool   `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

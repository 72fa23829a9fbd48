package models

import "time"

type Service struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	ArtistID uint    `gorm:"index" json:"artist_id"`
	Artist   Profile `gorm:"foreignKey:ArtistID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	DurationMin int     `json:"duration_min"`
	Price       float64 `json:"price"`
	Category    string  `gorm:"size:50" json:"category"`
	ImageURL    string  `gorm:"size:255" json:"image_url"`

	// Services referenced by appointments are deactivated, never deleted.
	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

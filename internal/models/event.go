package models

import (
	"time"
)

type Event struct {
	ID       string `gorm:"primaryKey" json:"id"`
	Title    string `json:"title"`
	ClubName string `json:"club_name"`
	// Date is a calendar day in "2006-01-02" form. The time of day lives in
	// Time as a free-text display string ("04:00 PM - 06:00 PM").
	Date        string `json:"date"`
	Time        string `json:"time"`
	Venue       string `json:"venue"`
	Description string `json:"description"`
	// MaxRegistrations caps admissions; nil means unbounded.
	MaxRegistrations *int      `json:"max_registrations,omitempty"`
	CreatedBy        string    `json:"created_by"`
	CreatedAt        time.Time `json:"created_at"`
}

package models

import (
	"time"
)

type Registration struct {
	ID          string `gorm:"primaryKey" json:"id"`
	EventID     string `gorm:"uniqueIndex:idx_event_roll" json:"event_id"`
	UserID      string `json:"user_id"`
	StudentName string `json:"student_name"`
	// RollNo is stored trimmed and upper-cased so the (event_id, roll_no)
	// uniqueness rule is case-insensitive.
	RollNo string `gorm:"uniqueIndex:idx_event_roll" json:"roll_no"`
	// Year is one of "1st Year" through "4th Year", enforced by the request
	// schema.
	Year      string    `json:"year"`
	CreatedAt time.Time `json:"created_at"`
}

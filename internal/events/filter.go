package events

import (
	"strings"

	"github.com/campus-connect/campus-events-api/internal/models"
)

// Query narrows an event listing. Empty fields match everything; set fields
// are ANDed together.
type Query struct {
	// Text matches the title, case-insensitive substring.
	Text string
	// Club matches the club name the same way. An event with no club name
	// never matches a non-empty club filter.
	Club string
	// Date requires exact calendar-date equality.
	Date string
}

// Filter returns the events matching q, preserving input order.
func Filter(evs []models.Event, q Query) []models.Event {
	text := strings.ToLower(q.Text)
	club := strings.ToLower(q.Club)

	var out []models.Event
	for _, e := range evs {
		if text != "" && !strings.Contains(strings.ToLower(e.Title), text) {
			continue
		}
		if club != "" && !strings.Contains(strings.ToLower(e.ClubName), club) {
			continue
		}
		if q.Date != "" && e.Date != q.Date {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Package events holds the pure listing logic: time-bucket partitioning,
// query filtering, and the advisory capacity check. Nothing here touches the
// database, so all of it is testable without one.
package events

import (
	"sort"
	"time"

	"github.com/campus-connect/campus-events-api/internal/models"
)

// Buckets partitions events relative to a calendar day. The four slices are
// disjoint and together contain every input event exactly once.
type Buckets struct {
	Today    []models.Event
	Tomorrow []models.Event
	Upcoming []models.Event
	Past     []models.Event
}

// Today returns the current calendar day in the event date format.
func Today() string {
	return time.Now().Format(time.DateOnly)
}

// NextDay returns the calendar day after date. Unparseable dates are returned
// unchanged; they will sort with plain string comparison like everything else.
func NextDay(date string) string {
	d, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return date
	}
	return d.AddDate(0, 0, 1).Format(time.DateOnly)
}

// Partition buckets events against today by calendar date only. Today,
// Tomorrow and Upcoming are sorted ascending by date, stable over input order;
// Past is sorted descending by date.
func Partition(evs []models.Event, today string) Buckets {
	tomorrow := NextDay(today)

	var b Buckets
	for _, e := range evs {
		switch {
		case e.Date == today:
			b.Today = append(b.Today, e)
		case e.Date == tomorrow:
			b.Tomorrow = append(b.Tomorrow, e)
		case e.Date > tomorrow:
			b.Upcoming = append(b.Upcoming, e)
		default:
			b.Past = append(b.Past, e)
		}
	}

	sortAscending(b.Today)
	sortAscending(b.Tomorrow)
	sortAscending(b.Upcoming)
	sort.SliceStable(b.Past, func(i, j int) bool {
		return b.Past[i].Date > b.Past[j].Date
	})

	return b
}

func sortAscending(evs []models.Event) {
	sort.SliceStable(evs, func(i, j int) bool {
		return evs[i].Date < evs[j].Date
	})
}

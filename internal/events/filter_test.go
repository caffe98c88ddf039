package events

import (
	"reflect"
	"testing"

	"github.com/campus-connect/campus-events-api/internal/models"
)

func TestFilterText(t *testing.T) {
	evs := []models.Event{
		{ID: "1", Title: "Hackathon 2024", ClubName: "Coding Club"},
		{ID: "2", Title: "Workshop", ClubName: "Robotics Club"},
		{ID: "3", Title: "Mini hackday", ClubName: "Coding Club"},
	}

	got := Filter(evs, Query{Text: "hack"})
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Errorf("expected events 1 and 3, got %+v", got)
	}
}

func TestFilterClub(t *testing.T) {
	evs := []models.Event{
		{ID: "1", Title: "Hackathon", ClubName: "Coding Club"},
		{ID: "2", Title: "Debate", ClubName: ""},
	}

	t.Run("NonEmptyFilterSkipsMissingClub", func(t *testing.T) {
		got := Filter(evs, Query{Club: "coding"})
		if len(got) != 1 || got[0].ID != "1" {
			t.Errorf("expected only event 1, got %+v", got)
		}
	})

	t.Run("EmptyFilterMatchesAll", func(t *testing.T) {
		got := Filter(evs, Query{})
		if len(got) != 2 {
			t.Errorf("expected all events, got %+v", got)
		}
	})
}

func TestFilterDate(t *testing.T) {
	evs := []models.Event{
		{ID: "1", Title: "A", Date: "2024-03-10"},
		{ID: "2", Title: "B", Date: "2024-03-11"},
	}

	got := Filter(evs, Query{Date: "2024-03-11"})
	if len(got) != 1 || got[0].ID != "2" {
		t.Errorf("expected only event 2, got %+v", got)
	}
}

func TestFilterPredicatesAreANDed(t *testing.T) {
	evs := []models.Event{
		{ID: "1", Title: "Hackathon", ClubName: "Coding Club", Date: "2024-03-10"},
		{ID: "2", Title: "Hackathon", ClubName: "Coding Club", Date: "2024-03-11"},
		{ID: "3", Title: "Hackathon", ClubName: "Music Club", Date: "2024-03-10"},
	}

	got := Filter(evs, Query{Text: "hack", Club: "coding", Date: "2024-03-10"})
	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("expected only event 1, got %+v", got)
	}
}

func TestFilterIdempotent(t *testing.T) {
	evs := []models.Event{
		{ID: "1", Title: "Hackathon 2024", ClubName: "Coding Club"},
		{ID: "2", Title: "Workshop", ClubName: "Robotics Club"},
	}
	q := Query{Text: "hack"}

	once := Filter(evs, q)
	twice := Filter(once, q)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("filter is not idempotent: %+v vs %+v", once, twice)
	}
}

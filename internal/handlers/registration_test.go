package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/campus-connect/campus-events-api/internal/models"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
)

func TestHandleRegister(t *testing.T) {
	f := setup(t)
	handler := NewRegistrationHandler(f.store, f.authHandler)
	ctx := context.Background()

	max := 2
	event := models.Event{Title: "Limited", Date: "2030-05-01", Time: "10:00 AM", Venue: "Hall", CreatedBy: f.club.ID, MaxRegistrations: &max}
	if err := f.store.CreateEvent(ctx, &event); err != nil {
		t.Fatalf("failed to create event: %v", err)
	}

	register := func(cookie, name, roll, year string) error {
		input := &RegisterRequest{ID: event.ID}
		input.Cookie = cookie
		input.Body.StudentName = name
		input.Body.RollNo = roll
		input.Body.Year = year
		_, err := handler.HandleRegister(ctx, input)
		return err
	}

	t.Run("StudentRegisters", func(t *testing.T) {
		if err := register(f.studentCookie, "Asha", "a12", "1st Year"); err != nil {
			t.Fatalf("registration failed: %v", err)
		}
	})

	t.Run("SameRollDifferentCasingConflicts", func(t *testing.T) {
		err := register(f.studentCookie, "Asha", "A12 ", "1st Year")
		wantStatus(t, err, 409)
	})

	t.Run("ClubCannotRegister", func(t *testing.T) {
		err := register(f.clubCookie, "Sneaky Club", "C1", "1st Year")
		wantStatus(t, err, 403)
	})

	t.Run("AnonymousUnauthorized", func(t *testing.T) {
		err := register("", "Nobody", "N1", "1st Year")
		wantStatus(t, err, 401)
	})

	t.Run("FullEventBlocked", func(t *testing.T) {
		// Second seat fills the event; the third attempt must be a blocked
		// state, not a silent success.
		if err := register(f.studentCookie, "Ben", "B1", "2nd Year"); err != nil {
			t.Fatalf("second registration failed: %v", err)
		}
		err := register(f.studentCookie, "Cara", "C1", "3rd Year")
		wantStatus(t, err, 409)

		count, err2 := f.store.CountRegistrations(ctx, event.ID)
		if err2 != nil {
			t.Fatalf("count failed: %v", err2)
		}
		if count != 2 {
			t.Errorf("expected count to stay at capacity 2, got %d", count)
		}
	})

	t.Run("MissingEvent404", func(t *testing.T) {
		input := &RegisterRequest{ID: "missing"}
		input.Cookie = f.studentCookie
		input.Body.StudentName = "Asha"
		input.Body.RollNo = "Z9"
		input.Body.Year = "1st Year"
		_, err := handler.HandleRegister(ctx, input)
		wantStatus(t, err, 404)
	})
}

func TestRegisterYearEnum(t *testing.T) {
	// The accepted study years are enforced once, by the request schema, so
	// the check runs at the transport boundary.
	f := setup(t)
	handler := NewRegistrationHandler(f.store, f.authHandler)

	event := models.Event{Title: "Open", Date: "2030-05-01", Time: "10:00 AM", Venue: "Hall", CreatedBy: f.club.ID}
	if err := f.store.CreateEvent(context.Background(), &event); err != nil {
		t.Fatalf("failed to create event: %v", err)
	}

	_, api := humatest.New(t)
	huma.Post(api, "/events/{id}/register", handler.HandleRegister)

	post := func(year string) int {
		resp := api.Post("/events/"+event.ID+"/register",
			"Cookie: "+f.studentCookie,
			map[string]any{
				"student_name": "Asha",
				"roll_no":      "Y-" + year,
				"year":         year,
			})
		return resp.Code
	}

	t.Run("UnknownYearRejected", func(t *testing.T) {
		if code := post("5th Year"); code != http.StatusUnprocessableEntity {
			t.Errorf("expected 422 for unknown year, got %d", code)
		}
	})

	t.Run("KnownYearAccepted", func(t *testing.T) {
		if code := post("2nd Year"); code != http.StatusOK {
			t.Errorf("expected 200 for valid year, got %d", code)
		}
	})
}

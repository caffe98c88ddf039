package handlers

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/campus-connect/campus-events-api/internal/auth"
	"github.com/campus-connect/campus-events-api/internal/events"
	"github.com/campus-connect/campus-events-api/internal/models"
	"github.com/campus-connect/campus-events-api/internal/notifier"
	"github.com/campus-connect/campus-events-api/internal/store"
	"github.com/danielgtaylor/huma/v2"
)

type EventHandler struct {
	store       store.Store
	notifier    notifier.Notifier
	authHandler *auth.AuthHandler
}

func NewEventHandler(st store.Store, notifier notifier.Notifier, authHandler *auth.AuthHandler) *EventHandler {
	return &EventHandler{store: st, notifier: notifier, authHandler: authHandler}
}

// EventView is an event plus its derived registration count. The count is
// computed per response and never cached; other clients register concurrently.
type EventView struct {
	models.Event
	RegistrationCount int64 `json:"registration_count"`
	Full              bool  `json:"full"`
}

func (h *EventHandler) views(ctx context.Context, evs []models.Event) ([]EventView, error) {
	ids := make([]string, len(evs))
	for i, e := range evs {
		ids[i] = e.ID
	}
	counts, err := h.store.CountRegistrationsByEvent(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]EventView, len(evs))
	for i, e := range evs {
		count := counts[e.ID]
		out[i] = EventView{
			Event:             e,
			RegistrationCount: count,
			Full:              !events.CanRegister(e.MaxRegistrations, count),
		}
	}
	return out, nil
}

type CreateEventRequest struct {
	auth.AuthInput
	Body struct {
		Title       string `json:"title" required:"true" doc:"Event title"`
		Date        string `json:"date" required:"true" doc:"Calendar day, 2006-01-02"`
		Time        string `json:"time" required:"true" doc:"Display time, e.g. 04:00 PM - 06:00 PM"`
		Venue       string `json:"venue" required:"true"`
		Description string `json:"description"`
		// Omit for unlimited registrations.
		MaxRegistrations *int `json:"max_registrations,omitempty" minimum:"1"`
	}
}

type EventResponse struct {
	Body models.Event
}

func (h *EventHandler) HandleCreate(ctx context.Context, input *CreateEventRequest) (*EventResponse, error) {
	sess := h.authHandler.Resolve(ctx, input.Cookie)
	if err := auth.Require(sess, models.RoleClub); err != nil {
		return nil, err
	}

	if _, err := time.Parse(time.DateOnly, input.Body.Date); err != nil {
		return nil, huma.Error422UnprocessableEntity("Date must be a calendar day in 2006-01-02 form")
	}

	// Club name comes from the creator's profile, not from the form.
	user, err := h.store.GetUserByID(ctx, sess.Identity.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load club profile")
	}
	clubName := ""
	if user.ClubName != nil {
		clubName = *user.ClubName
	}

	event := models.Event{
		Title:            input.Body.Title,
		ClubName:         clubName,
		Date:             input.Body.Date,
		Time:             input.Body.Time,
		Venue:            input.Body.Venue,
		Description:      input.Body.Description,
		MaxRegistrations: input.Body.MaxRegistrations,
		CreatedBy:        sess.Identity.ID,
	}
	if err := h.store.CreateEvent(ctx, &event); err != nil {
		return nil, huma.Error500InternalServerError("Failed to create event")
	}

	if h.notifier != nil {
		if err := h.notifier.NotifyEventCreated(event); err != nil {
			log.Printf("Failed to announce event %s: %v", event.ID, err)
		}
	}

	return &EventResponse{Body: event}, nil
}

type UpdateEventRequest struct {
	auth.AuthInput
	ID   string `path:"id"`
	Body struct {
		Title            string `json:"title" required:"true"`
		Date             string `json:"date" required:"true"`
		Time             string `json:"time" required:"true"`
		Venue            string `json:"venue" required:"true"`
		Description      string `json:"description"`
		MaxRegistrations *int   `json:"max_registrations,omitempty" minimum:"1"`
	}
}

func (h *EventHandler) HandleUpdate(ctx context.Context, input *UpdateEventRequest) (*EventResponse, error) {
	sess := h.authHandler.Resolve(ctx, input.Cookie)
	if err := auth.Require(sess, models.RoleClub); err != nil {
		return nil, err
	}

	event, err := h.ownedEvent(ctx, sess, input.ID)
	if err != nil {
		return nil, err
	}

	if _, err := time.Parse(time.DateOnly, input.Body.Date); err != nil {
		return nil, huma.Error422UnprocessableEntity("Date must be a calendar day in 2006-01-02 form")
	}

	event.Title = input.Body.Title
	event.Date = input.Body.Date
	event.Time = input.Body.Time
	event.Venue = input.Body.Venue
	event.Description = input.Body.Description
	event.MaxRegistrations = input.Body.MaxRegistrations

	if err := h.store.UpdateEvent(ctx, event); err != nil {
		return nil, huma.Error500InternalServerError("Failed to update event")
	}
	return &EventResponse{Body: *event}, nil
}

type GetEventRequest struct {
	auth.AuthInput
	ID string `path:"id"`
}

func (h *EventHandler) HandleGet(ctx context.Context, input *GetEventRequest) (*EventResponse, error) {
	sess := h.authHandler.Resolve(ctx, input.Cookie)
	if err := auth.Require(sess, models.RoleClub); err != nil {
		return nil, err
	}

	event, err := h.ownedEvent(ctx, sess, input.ID)
	if err != nil {
		return nil, err
	}
	return &EventResponse{Body: *event}, nil
}

type DeleteEventRequest struct {
	auth.AuthInput
	ID string `path:"id"`
}

func (h *EventHandler) HandleDelete(ctx context.Context, input *DeleteEventRequest) (*struct{}, error) {
	sess := h.authHandler.Resolve(ctx, input.Cookie)
	if err := auth.Require(sess, models.RoleClub); err != nil {
		return nil, err
	}

	if _, err := h.ownedEvent(ctx, sess, input.ID); err != nil {
		return nil, err
	}

	if err := h.store.DeleteEvent(ctx, input.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error404NotFound("Event not found")
		}
		return nil, huma.Error500InternalServerError("Failed to delete event")
	}
	return nil, nil
}

// ownedEvent loads an event and checks the caller created it.
func (h *EventHandler) ownedEvent(ctx context.Context, sess auth.Session, id string) (*models.Event, error) {
	event, err := h.store.GetEventByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error404NotFound("Event not found")
		}
		return nil, huma.Error500InternalServerError("Failed to load event")
	}
	if event.CreatedBy != sess.Identity.ID {
		return nil, huma.Error403Forbidden("Forbidden")
	}
	return event, nil
}

type ListEventsRequest struct {
	auth.AuthInput
	Search string `query:"search" doc:"Case-insensitive title substring"`
	Club   string `query:"club" doc:"Case-insensitive club name substring"`
	Date   string `query:"date" doc:"Exact calendar day, 2006-01-02"`
}

type ListEventsResponse struct {
	Body struct {
		Today    []EventView `json:"today"`
		Tomorrow []EventView `json:"tomorrow"`
		Upcoming []EventView `json:"upcoming"`
	}
}

func (h *EventHandler) HandleList(ctx context.Context, input *ListEventsRequest) (*ListEventsResponse, error) {
	sess := h.authHandler.Resolve(ctx, input.Cookie)
	if err := auth.Require(sess); err != nil {
		return nil, err
	}

	all, err := h.store.ListEvents(ctx, store.EventQuery{})
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list events")
	}

	filtered := events.Filter(all, events.Query{
		Text: input.Search,
		Club: input.Club,
		Date: input.Date,
	})
	buckets := events.Partition(filtered, events.Today())

	res := &ListEventsResponse{}
	if res.Body.Today, err = h.views(ctx, buckets.Today); err != nil {
		return nil, huma.Error500InternalServerError("Failed to count registrations")
	}
	if res.Body.Tomorrow, err = h.views(ctx, buckets.Tomorrow); err != nil {
		return nil, huma.Error500InternalServerError("Failed to count registrations")
	}
	if res.Body.Upcoming, err = h.views(ctx, buckets.Upcoming); err != nil {
		return nil, huma.Error500InternalServerError("Failed to count registrations")
	}
	return res, nil
}

type ListPastEventsRequest struct {
	Search string `query:"search" doc:"Case-insensitive title substring"`
	Club   string `query:"club" doc:"Case-insensitive club name substring"`
	Date   string `query:"date" doc:"Exact calendar day, 2006-01-02"`
}

type ListPastEventsResponse struct {
	Body struct {
		Events []EventView `json:"events"`
	}
}

// HandleListPast is the one public listing: anyone may browse what already
// happened. Newest first.
func (h *EventHandler) HandleListPast(ctx context.Context, input *ListPastEventsRequest) (*ListPastEventsResponse, error) {
	past, err := h.store.ListEvents(ctx, store.EventQuery{Before: events.Today(), Descending: true})
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list past events")
	}

	filtered := events.Filter(past, events.Query{
		Text: input.Search,
		Club: input.Club,
		Date: input.Date,
	})

	res := &ListPastEventsResponse{}
	if res.Body.Events, err = h.views(ctx, filtered); err != nil {
		return nil, huma.Error500InternalServerError("Failed to count registrations")
	}
	return res, nil
}

type ListRegistrationsRequest struct {
	auth.AuthInput
	ID string `path:"id"`
}

type ListRegistrationsResponse struct {
	Body struct {
		Event         models.Event          `json:"event"`
		Registrations []models.Registration `json:"registrations"`
	}
}

func (h *EventHandler) HandleListRegistrations(ctx context.Context, input *ListRegistrationsRequest) (*ListRegistrationsResponse, error) {
	sess := h.authHandler.Resolve(ctx, input.Cookie)
	if err := auth.Require(sess, models.RoleClub); err != nil {
		return nil, err
	}

	event, err := h.ownedEvent(ctx, sess, input.ID)
	if err != nil {
		return nil, err
	}

	regs, err := h.store.ListRegistrations(ctx, input.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list registrations")
	}

	res := &ListRegistrationsResponse{}
	res.Body.Event = *event
	res.Body.Registrations = regs
	return res, nil
}

package handlers

import (
	"context"
	"errors"

	"github.com/campus-connect/campus-events-api/internal/auth"
	"github.com/campus-connect/campus-events-api/internal/models"
	"github.com/campus-connect/campus-events-api/internal/store"
	"github.com/danielgtaylor/huma/v2"
)

type RegistrationHandler struct {
	store       store.Store
	authHandler *auth.AuthHandler
}

func NewRegistrationHandler(st store.Store, authHandler *auth.AuthHandler) *RegistrationHandler {
	return &RegistrationHandler{store: st, authHandler: authHandler}
}

type RegisterRequest struct {
	auth.AuthInput
	ID   string `path:"id"`
	Body struct {
		StudentName string `json:"student_name" required:"true" doc:"Full name"`
		RollNo      string `json:"roll_no" required:"true" doc:"Roll number; compared case-insensitively"`
		Year        string `json:"year" required:"true" enum:"1st Year,2nd Year,3rd Year,4th Year" doc:"Year of study"`
	}
}

type RegisterResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}

func (h *RegistrationHandler) HandleRegister(ctx context.Context, input *RegisterRequest) (*RegisterResponse, error) {
	sess := h.authHandler.Resolve(ctx, input.Cookie)
	if err := auth.Require(sess, models.RoleStudent); err != nil {
		return nil, err
	}

	reg := models.Registration{
		EventID:     input.ID,
		UserID:      sess.Identity.ID,
		StudentName: input.Body.StudentName,
		RollNo:      input.Body.RollNo,
		Year:        input.Body.Year,
	}

	// The capacity check and duplicate detection both live inside the insert
	// transaction; this call is the authoritative admission decision.
	if err := h.store.CreateRegistration(ctx, &reg); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return nil, huma.Error404NotFound("Event not found")
		case errors.Is(err, store.ErrConflict):
			return nil, huma.Error409Conflict("This roll number is already registered for this event.")
		case errors.Is(err, store.ErrEventFull):
			return nil, huma.Error409Conflict("Registrations full")
		default:
			return nil, huma.Error500InternalServerError("Failed to register")
		}
	}

	res := &RegisterResponse{}
	res.Body.Message = "Registered successfully!"
	return res, nil
}

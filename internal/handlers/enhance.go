package handlers

import (
	"context"
	"errors"

	"github.com/campus-connect/campus-events-api/internal/auth"
	"github.com/campus-connect/campus-events-api/internal/gemini"
	"github.com/campus-connect/campus-events-api/internal/models"
	"github.com/danielgtaylor/huma/v2"
)

type EnhanceHandler struct {
	client      *gemini.Client
	authHandler *auth.AuthHandler
}

func NewEnhanceHandler(client *gemini.Client, authHandler *auth.AuthHandler) *EnhanceHandler {
	return &EnhanceHandler{client: client, authHandler: authHandler}
}

type EnhanceRequest struct {
	auth.AuthInput
	Body struct {
		Title       string `json:"title"`
		ClubName    string `json:"club_name"`
		Venue       string `json:"venue"`
		Time        string `json:"time"`
		Description string `json:"description" required:"true"`
	}
}

type EnhanceResponse struct {
	Body struct {
		Description string `json:"description"`
	}
}

func (h *EnhanceHandler) HandleEnhance(ctx context.Context, input *EnhanceRequest) (*EnhanceResponse, error) {
	sess := h.authHandler.Resolve(ctx, input.Cookie)
	if err := auth.Require(sess, models.RoleClub); err != nil {
		return nil, err
	}

	improved, err := h.client.Improve(ctx, gemini.Input{
		Title:       input.Body.Title,
		Club:        input.Body.ClubName,
		Venue:       input.Body.Venue,
		Time:        input.Body.Time,
		Description: input.Body.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, gemini.ErrEmptyInput):
			return nil, huma.Error422UnprocessableEntity("Please write a description first.")
		case errors.Is(err, gemini.ErrNoCandidates), errors.Is(err, gemini.ErrEmptyOutput):
			return nil, huma.Error502BadGateway("AI did not return valid text.")
		default:
			return nil, huma.Error502BadGateway("AI improvement failed.")
		}
	}

	res := &EnhanceResponse{}
	res.Body.Description = improved
	return res, nil
}

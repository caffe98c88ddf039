package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campus-connect/campus-events-api/internal/gemini"
)

func enhanceFixture(t *testing.T, respond http.HandlerFunc) (*EnhanceHandler, *fixture) {
	t.Helper()
	srv := httptest.NewServer(respond)
	t.Cleanup(srv.Close)

	client := gemini.NewClient("test-key", "test-model")
	client.BaseURL = srv.URL

	f := setup(t)
	return NewEnhanceHandler(client, f.authHandler), f
}

func TestHandleEnhance(t *testing.T) {
	handler, f := enhanceFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Polished description."}]}}]}`))
	})
	ctx := context.Background()

	t.Run("ClubGetsImprovedText", func(t *testing.T) {
		input := &EnhanceRequest{}
		input.Cookie = f.clubCookie
		input.Body.Title = "Hackathon"
		input.Body.ClubName = "Coding Club"
		input.Body.Venue = "Main Hall"
		input.Body.Time = "10:00 AM"
		input.Body.Description = "rough draft"

		resp, err := handler.HandleEnhance(ctx, input)
		if err != nil {
			t.Fatalf("HandleEnhance returned error: %v", err)
		}
		if resp.Body.Description != "Polished description." {
			t.Errorf("unexpected description: %q", resp.Body.Description)
		}
	})

	t.Run("BlankDescriptionRejected", func(t *testing.T) {
		input := &EnhanceRequest{}
		input.Cookie = f.clubCookie
		input.Body.Description = "   "

		_, err := handler.HandleEnhance(ctx, input)
		wantStatus(t, err, 422)
	})

	t.Run("StudentForbidden", func(t *testing.T) {
		input := &EnhanceRequest{}
		input.Cookie = f.studentCookie
		input.Body.Description = "rough draft"

		_, err := handler.HandleEnhance(ctx, input)
		wantStatus(t, err, 403)
	})
}

func TestHandleEnhanceNoCandidates(t *testing.T) {
	handler, f := enhanceFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})

	input := &EnhanceRequest{}
	input.Cookie = f.clubCookie
	input.Body.Description = "rough draft"

	_, err := handler.HandleEnhance(context.Background(), input)
	wantStatus(t, err, 502)
}

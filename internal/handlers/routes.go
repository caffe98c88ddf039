package handlers

import (
	"net/http"

	"github.com/campus-connect/campus-events-api/internal/auth"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func RegisterRoutes(r *chi.Mux, authHandler *auth.AuthHandler, eventHandler *EventHandler, registrationHandler *RegistrationHandler, enhanceHandler *EnhanceHandler) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(authHandler.RefreshMiddleware)

	// Initialize Huma API
	config := huma.DefaultConfig("Campus Events API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"cookieAuth": {
			Type: "apiKey",
			In:   "cookie",
			Name: auth.TokenCookie,
		},
	}
	api := humachi.New(r, config)

	cookieAuth := func(o *huma.Operation) {
		o.Security = []map[string][]string{{"cookieAuth": {}}}
	}

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Identity routes
	huma.Post(api, "/auth/register", authHandler.HandleSignUp)
	huma.Post(api, "/auth/login", authHandler.HandleSignIn)
	huma.Post(api, "/auth/logout", authHandler.HandleSignOut)

	// Past events are browsable without an account.
	huma.Get(api, "/past-events", eventHandler.HandleListPast)

	// Authenticated routes; role gating happens inside each operation.
	huma.Get(api, "/me", authHandler.HandleMe, cookieAuth)
	huma.Get(api, "/events", eventHandler.HandleList, cookieAuth)
	huma.Post(api, "/events", eventHandler.HandleCreate, cookieAuth)
	huma.Get(api, "/events/{id}", eventHandler.HandleGet, cookieAuth)
	huma.Put(api, "/events/{id}", eventHandler.HandleUpdate, cookieAuth)
	huma.Delete(api, "/events/{id}", eventHandler.HandleDelete, cookieAuth)
	huma.Get(api, "/events/{id}/registrations", eventHandler.HandleListRegistrations, cookieAuth)
	huma.Post(api, "/events/{id}/register", registrationHandler.HandleRegister, cookieAuth)
	huma.Post(api, "/events/improve", enhanceHandler.HandleEnhance, cookieAuth)
}

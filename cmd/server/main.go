package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/campus-connect/campus-events-api/internal/auth"
	"github.com/campus-connect/campus-events-api/internal/config"
	"github.com/campus-connect/campus-events-api/internal/database"
	"github.com/campus-connect/campus-events-api/internal/gemini"
	"github.com/campus-connect/campus-events-api/internal/handlers"
	"github.com/campus-connect/campus-events-api/internal/notifier"
	"github.com/campus-connect/campus-events-api/internal/store"
	"github.com/go-chi/chi/v5"
)

func main() {
	// Load Configuration
	cfg := config.LoadConfig()

	// Connect to Database
	db := database.Connect(cfg)
	st := store.New(db)

	// Initialize Handlers
	var eventNotifier notifier.Notifier
	if cfg.DiscordBotToken != "" && cfg.DiscordAnnouncementsChannelID != "" {
		session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
		if err != nil {
			log.Printf("Discord notifier not initialized: %v", err)
		} else {
			eventNotifier = notifier.NewDiscordNotifier(session, cfg.DiscordAnnouncementsChannelID)
		}
	}

	authHandler := auth.NewAuthHandler(cfg, st, auth.NewBroadcaster())
	eventHandler := handlers.NewEventHandler(st, eventNotifier, authHandler)
	registrationHandler := handlers.NewRegistrationHandler(st, authHandler)
	enhanceHandler := handlers.NewEnhanceHandler(gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel), authHandler)

	// Log auth-state changes
	sessions, cancel := authHandler.Broadcaster().Subscribe()
	defer cancel()
	go func() {
		for s := range sessions {
			if s.Identity != nil {
				log.Printf("Auth state changed: %s signed in as %s", s.Identity.Email, s.Role)
			} else {
				log.Printf("Auth state changed: signed out")
			}
		}
	}()

	// Initialize Router
	r := chi.NewRouter()

	// Register Routes
	handlers.RegisterRoutes(r, authHandler, eventHandler, registrationHandler, enhanceHandler)

	// Start Server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

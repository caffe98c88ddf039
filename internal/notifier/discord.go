package notifier

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/campus-connect/campus-events-api/internal/models"
)

type Notifier interface {
	NotifyEventCreated(event models.Event) error
}

type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordNotifier(session *discordgo.Session, channelID string) *DiscordNotifier {
	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
	}
}

func (n *DiscordNotifier) NotifyEventCreated(event models.Event) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}

	capacityStr := "Unlimited"
	if event.MaxRegistrations != nil {
		capacityStr = fmt.Sprintf("%d seats", *event.MaxRegistrations)
	}

	message := fmt.Sprintf("📢 **New Event: %s**\n**Club:** %s\n**Date:** %s\n**Time:** %s\n**Venue:** %s\n**Capacity:** %s",
		event.Title,
		event.ClubName,
		event.Date,
		event.Time,
		event.Venue,
		capacityStr,
	)

	_, err := n.session.ChannelMessageSend(n.channelID, message)
	if err != nil {
		log.Printf("Failed to send discord message: %v", err)
		return err
	}

	return nil
}

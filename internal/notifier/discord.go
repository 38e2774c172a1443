// Package notifier pushes event-day updates to a Discord channel so the
// couple can follow RSVPs, check-ins and lottery draws from their phones.
package notifier

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"wedding-manager/internal/models"
)

type Notifier interface {
	NotifyRSVP(guest models.Guest, partySize int) error
	NotifyCheckin(guest models.Guest, checkin models.Checkin) error
	NotifyDraw(prize models.Prize, guest models.Guest) error
}

type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordNotifier(botToken, channelID string) (*DiscordNotifier, error) {
	if botToken == "" || channelID == "" {
		return nil, fmt.Errorf("discord bot token and channel ID are required")
	}
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, err
	}
	return &DiscordNotifier{session: session, channelID: channelID}, nil
}

func (n *DiscordNotifier) NotifyRSVP(guest models.Guest, partySize int) error {
	status := "已确认出席"
	if !guest.Attending {
		status = "无法出席"
	}
	message := fmt.Sprintf("💌 **RSVP Update**\n**Guest:** %s\n**Phone:** %s\n**Status:** %s\n**Party size:** %d",
		guest.Name, guest.Phone, status, partySize)
	return n.send(message)
}

func (n *DiscordNotifier) NotifyCheckin(guest models.Guest, checkin models.Checkin) error {
	tableNo := guest.TableNo
	if tableNo == "" {
		tableNo = "未分配"
	}
	message := fmt.Sprintf("✅ **Check-in**\n**Guest:** %s\n**Table:** %s\n**Attendees:** %d",
		guest.Name, tableNo, checkin.ActualAttendees)
	return n.send(message)
}

func (n *DiscordNotifier) NotifyDraw(prize models.Prize, guest models.Guest) error {
	message := fmt.Sprintf("🎉 **Lottery Draw**\n**Prize:** %s\n**Winner:** %s", prize.Name, guest.Name)
	return n.send(message)
}

func (n *DiscordNotifier) send(message string) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	_, err := n.session.ChannelMessageSend(n.channelID, message)
	if err != nil {
		log.Error().Err(err).Msg("Failed to send discord message")
		return err
	}
	return nil
}

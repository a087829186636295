package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/todopro_api/pkg/whatsapp"
)

// Messenger sends a text message and returns the provider message id.
type Messenger interface {
	SendText(ctx context.Context, to, body string) (string, error)
}

// WhatsAppMessenger sends through the WhatsApp Cloud API.
type WhatsAppMessenger struct {
	client *whatsapp.Client
}

func NewWhatsAppMessenger(client *whatsapp.Client) *WhatsAppMessenger {
	return &WhatsAppMessenger{client: client}
}

func (m *WhatsAppMessenger) SendText(ctx context.Context, to, body string) (string, error) {
	resp, err := m.client.SendText(ctx, whatsapp.TextMessage{To: to, Body: body})
	if err != nil {
		log.Error().Err(err).Msg("WhatsApp send failed")
		return "", fmt.Errorf("failed to send whatsapp message: %w", err)
	}
	id := resp.MessageID()
	log.Info().Str("message_id", id).Msg("WhatsApp message sent")
	return id, nil
}

package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/todopro_api/internal/models"
	"github.com/GTDGit/todopro_api/internal/utils"
	"github.com/GTDGit/todopro_api/pkg/whatsapp"
)

// LeadCapturer records inbound contacts as leads.
type LeadCapturer interface {
	CaptureInbound(ctx context.Context, phone, name, text string) (*models.Lead, bool, error)
}

// WebhookHandler handles incoming WhatsApp Cloud API webhooks.
type WebhookHandler struct {
	leads       LeadCapturer
	appSecret   string
	verifyToken string
}

// NewWebhookHandler constructs a WebhookHandler.
func NewWebhookHandler(leads LeadCapturer, appSecret, verifyToken string) *WebhookHandler {
	return &WebhookHandler{leads: leads, appSecret: appSecret, verifyToken: verifyToken}
}

// Verify handles GET /webhook/whatsapp, the subscription handshake.
func (h *WebhookHandler) Verify(c *gin.Context) {
	if c.Query("hub.mode") != "subscribe" || h.verifyToken == "" || c.Query("hub.verify_token") != h.verifyToken {
		c.String(http.StatusForbidden, "forbidden")
		return
	}
	c.String(http.StatusOK, c.Query("hub.challenge"))
}

// Receive handles POST /webhook/whatsapp
func (h *WebhookHandler) Receive(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
		return
	}

	if !utils.VerifySignature(body, c.GetHeader("X-Hub-Signature-256"), h.appSecret) {
		log.Warn().Str("ip", c.ClientIP()).Msg("WhatsApp webhook signature mismatch")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
		return
	}

	var payload whatsapp.WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	// Per-message failures are logged; the delivery itself is always acknowledged.
	captured := 0
	for _, m := range payload.InboundMessages() {
		lead, created, err := h.leads.CaptureInbound(c.Request.Context(), m.From, m.Name, m.Text)
		if err != nil {
			log.Error().Err(err).Str("message_id", m.MessageID).Msg("Failed to capture inbound WhatsApp message")
			continue
		}
		captured++
		log.Info().Str("message_id", m.MessageID).Str("lead_id", lead.ID).Bool("new_lead", created).Msg("Inbound WhatsApp message captured")
	}

	c.JSON(http.StatusOK, gin.H{"received": true, "captured": captured})
}

// Package whatsapp is a minimal WhatsApp Cloud API client for text messages.
package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrEmptyRecipient is returned when the destination has no digits.
var ErrEmptyRecipient = errors.New("whatsapp: empty recipient")

// Config holds the Cloud API connection settings.
type Config struct {
	BaseURL       string
	PhoneNumberID string
	AccessToken   string
	Timeout       time.Duration
}

// Client sends WhatsApp messages through the Cloud API.
type Client struct {
	http          *resty.Client
	phoneNumberID string
}

// NewClient builds a client. BaseURL should include the API version,
// e.g. https://graph.facebook.com/v19.0.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	r := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetAuthToken(cfg.AccessToken).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	return &Client{http: r, phoneNumberID: cfg.PhoneNumberID}
}

// TextMessage is an outbound text message.
type TextMessage struct {
	To         string
	Body       string
	PreviewURL bool
}

// SendResponse is the successful send payload.
type SendResponse struct {
	Contacts []struct {
		Input string `json:"input"`
		WaID  string `json:"wa_id"`
	} `json:"contacts"`
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

// MessageID returns the first message id, if any.
func (r *SendResponse) MessageID() string {
	if r == nil || len(r.Messages) == 0 {
		return ""
	}
	return r.Messages[0].ID
}

// APIError is the Graph API error body.
type APIError struct {
	Status int `json:"-"`
	Body   struct {
		Message   string `json:"message"`
		Type      string `json:"type"`
		Code      int    `json:"code"`
		FBTraceID string `json:"fbtrace_id"`
	} `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("whatsapp api error: status=%d code=%d message=%s", e.Status, e.Body.Code, e.Body.Message)
}

// SendText sends a text message. The recipient is reduced to its digits.
func (c *Client) SendText(ctx context.Context, msg TextMessage) (*SendResponse, error) {
	to := DigitsOnly(msg.To)
	if to == "" {
		return nil, ErrEmptyRecipient
	}

	payload := map[string]any{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                to,
		"type":              "text",
		"text": map[string]any{
			"body":        msg.Body,
			"preview_url": msg.PreviewURL,
		},
	}

	result := &SendResponse{}
	apiErr := &APIError{}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(result).
		SetError(apiErr).
		Post(fmt.Sprintf("/%s/messages", c.phoneNumberID))
	if err != nil {
		return nil, fmt.Errorf("send whatsapp message: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		apiErr.Status = resp.StatusCode()
		return nil, apiErr
	}
	return result, nil
}

// DigitsOnly strips everything but ASCII digits.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

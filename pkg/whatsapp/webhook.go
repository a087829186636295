package whatsapp

// WebhookPayload is the notification body posted by the Cloud API.
type WebhookPayload struct {
	Object string         `json:"object"`
	Entry  []WebhookEntry `json:"entry"`
}

// WebhookEntry groups changes for one business account.
type WebhookEntry struct {
	ID      string          `json:"id"`
	Changes []WebhookChange `json:"changes"`
}

// WebhookChange is one field change. Field is "messages" for inbound
// messages and delivery statuses.
type WebhookChange struct {
	Field string       `json:"field"`
	Value WebhookValue `json:"value"`
}

// WebhookValue carries contacts and messages of a change.
type WebhookValue struct {
	MessagingProduct string    `json:"messaging_product"`
	Contacts         []Contact `json:"contacts"`
	Messages         []Message `json:"messages"`
}

// Contact is the sender profile.
type Contact struct {
	WaID    string `json:"wa_id"`
	Profile struct {
		Name string `json:"name"`
	} `json:"profile"`
}

// Message is an inbound message. Only text bodies are read.
type Message struct {
	From      string `json:"from"`
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
	Text      *struct {
		Body string `json:"body"`
	} `json:"text,omitempty"`
}

// Inbound is a flattened inbound message with its sender name.
type Inbound struct {
	MessageID string
	From      string
	Name      string
	Type      string
	Text      string
}

// InboundMessages flattens every message in the payload, resolving the
// sender name from the contacts of the same change.
func (p *WebhookPayload) InboundMessages() []Inbound {
	var out []Inbound
	for _, e := range p.Entry {
		for _, ch := range e.Changes {
			if ch.Field != "messages" {
				continue
			}
			names := make(map[string]string, len(ch.Value.Contacts))
			for _, c := range ch.Value.Contacts {
				names[c.WaID] = c.Profile.Name
			}
			for _, m := range ch.Value.Messages {
				in := Inbound{MessageID: m.ID, From: m.From, Name: names[m.From], Type: m.Type}
				if m.Text != nil {
					in.Text = m.Text.Body
				}
				out = append(out, in)
			}
		}
	}
	return out
}

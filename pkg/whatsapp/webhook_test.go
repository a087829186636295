package whatsapp

import (
	"encoding/json"
	"testing"
)

const samplePayload = `{
  "object": "whatsapp_business_account",
  "entry": [{
    "id": "WABA",
    "changes": [
      {"field": "messages", "value": {
        "messaging_product": "whatsapp",
        "contacts": [{"wa_id": "34611222333", "profile": {"name": "Marta"}}],
        "messages": [
          {"from": "34611222333", "id": "wamid.A", "timestamp": "1715333400", "type": "text", "text": {"body": "Hola, precio andamio?"}},
          {"from": "447700900123", "id": "wamid.B", "timestamp": "1715333401", "type": "image"}
        ]
      }},
      {"field": "account_update", "value": {"messages": [{"from": "1", "id": "x", "type": "text", "text": {"body": "ignored"}}]}}
    ]
  }]
}`

func TestInboundMessages(t *testing.T) {
	var p WebhookPayload
	if err := json.Unmarshal([]byte(samplePayload), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got := p.InboundMessages()
	if len(got) != 2 {
		t.Fatalf("got %d messages, want 2", len(got))
	}
	if got[0].Name != "Marta" || got[0].Text != "Hola, precio andamio?" || got[0].Type != "text" {
		t.Fatalf("first = %+v", got[0])
	}
	if got[1].Name != "" || got[1].Text != "" || got[1].From != "447700900123" {
		t.Fatalf("second = %+v", got[1])
	}
}

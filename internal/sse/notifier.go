package sse

import "github.com/GTDGit/todopro_api/internal/models"

// Notifier is how services announce changes to open event streams.
type Notifier interface {
	NotifyQuote(event EventType, q *models.Quote)
	NotifyLead(event EventType, lead *models.Lead)
	NotifyCatalog()
}

// HubNotifier publishes to a Hub, skipping the encode when nobody listens.
type HubNotifier struct {
	hub *Hub
}

// NewHubNotifier creates a notifier backed by the given Hub.
func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifyQuote(event EventType, q *models.Quote) {
	if n.hub.ClientCount() == 0 {
		return
	}
	total := q.FinalTotal
	n.hub.Broadcast(&Event{
		Event:      event,
		ID:         q.ID,
		ClientName: q.ClientInfo.Name,
		Type:       string(q.Type),
		FinalTotal: &total,
	})
}

func (n *HubNotifier) NotifyLead(event EventType, lead *models.Lead) {
	if n.hub.ClientCount() == 0 {
		return
	}
	n.hub.Broadcast(&Event{
		Event:      event,
		ID:         lead.ID,
		ClientName: lead.Name,
		Status:     string(lead.Status),
	})
}

func (n *HubNotifier) NotifyCatalog() {
	if n.hub.ClientCount() == 0 {
		return
	}
	n.hub.Broadcast(&Event{Event: EventCatalogUpdated})
}

// NopNotifier discards every event.
type NopNotifier struct{}

func (NopNotifier) NotifyQuote(EventType, *models.Quote) {}
func (NopNotifier) NotifyLead(EventType, *models.Lead)   {}
func (NopNotifier) NotifyCatalog()                       {}

package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/GTDGit/todopro_api/internal/export"
	"github.com/GTDGit/todopro_api/internal/models"
	"github.com/GTDGit/todopro_api/internal/sse"
	"github.com/GTDGit/todopro_api/internal/utils"
	"github.com/GTDGit/todopro_api/pkg/whatsapp"
)

// CRMPersistence stores the CRM document.
type CRMPersistence interface {
	Load(ctx context.Context) (models.CRMState, bool, error)
	Save(ctx context.Context, state models.CRMState) error
}

// DefaultTemplates are installed when no CRM state exists yet.
func DefaultTemplates() []models.MessageTemplate {
	return []models.MessageTemplate{
		{
			ID:      "1",
			Name:    "Initial Contact",
			Content: "Hi {{name}}, thank you for your interest in TodoPro. How can I help you today?",
			Type:    "whatsapp",
		},
		{
			ID:      "2",
			Name:    "Follow Up",
			Content: "Hi {{name}}, just following up on our previous conversation. Would you like to schedule a call?",
			Type:    "whatsapp",
		},
	}
}

// LeadService manages the leads CRM: leads, message templates and
// short-lived notifications. State is held in memory and written through to
// the store on every change.
type LeadService struct {
	mu        sync.Mutex
	store     CRMPersistence
	notifier  sse.Notifier
	messenger Messenger
	ttl       time.Duration
	now       func() time.Time
	state     models.CRMState
}

func NewLeadService(store CRMPersistence, notifier sse.Notifier, messenger Messenger, notificationTTL time.Duration) *LeadService {
	if notifier == nil {
		notifier = sse.NopNotifier{}
	}
	return &LeadService{
		store:     store,
		notifier:  notifier,
		messenger: messenger,
		ttl:       notificationTTL,
		now:       time.Now,
		state: models.CRMState{
			Leads:         []models.Lead{},
			Templates:     DefaultTemplates(),
			Notifications: []models.Notification{},
		},
	}
}

// Load hydrates the CRM from the store.
func (s *LeadService) Load(ctx context.Context) error {
	state, found, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load crm state: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !found {
		return nil
	}
	if state.Leads == nil {
		state.Leads = []models.Lead{}
	}
	if len(state.Templates) == 0 {
		state.Templates = DefaultTemplates()
	}
	if state.Notifications == nil {
		state.Notifications = []models.Notification{}
	}
	s.state = state
	log.Info().Int("leads", len(state.Leads)).Int("templates", len(state.Templates)).Msg("CRM state loaded")
	return nil
}

// LeadFilter narrows List. Status "all" or "" disables the status filter.
type LeadFilter struct {
	Status string `form:"status"`
	Search string `form:"search"`
}

// List returns leads matching the filter in insertion order.
func (s *LeadService) List(f LeadFilter) ([]models.Lead, error) {
	status := strings.TrimSpace(f.Status)
	if status != "" && status != "all" && !models.LeadStatus(status).Valid() {
		return nil, utils.ErrInvalidStatus
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))

	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Lead{}
	for _, l := range s.state.Leads {
		if status != "" && status != "all" && string(l.Status) != status {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(l.Name), search) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

// Get returns one lead.
func (s *LeadService) Get(id string) (*models.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.leadIndex(id)
	if i < 0 {
		return nil, utils.ErrLeadNotFound
	}
	l := s.state.Leads[i]
	return &l, nil
}

// LeadInput creates a lead.
type LeadInput struct {
	Name   string `json:"name" binding:"required"`
	Phone  string `json:"phone"`
	Email  string `json:"email"`
	Source string `json:"source"`
	Notes  string `json:"notes"`
	Status string `json:"status"`
}

// Create adds a lead and raises a "New lead added" notification.
func (s *LeadService) Create(ctx context.Context, in *LeadInput) (*models.Lead, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", utils.ErrInvalidInput)
	}
	status := models.LeadStatusNew
	if in.Status != "" {
		status = models.LeadStatus(in.Status)
		if !status.Valid() {
			return nil, utils.ErrInvalidStatus
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	lead := models.Lead{
		ID:        utils.GenerateID(),
		Name:      name,
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		Source:    strings.TrimSpace(in.Source),
		Notes:     strings.TrimSpace(in.Notes),
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	next := s.cloneState()
	next.Leads = append(next.Leads, lead)
	next.Notifications = append(next.Notifications, s.notification("New lead added: "+lead.Name, "success", now))
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}

	log.Info().Str("lead_id", lead.ID).Str("source", lead.Source).Msg("Lead created")
	s.notifier.NotifyLead(sse.EventLeadCreated, &lead)
	return &lead, nil
}

// LeadPatch updates the fields that are set.
type LeadPatch struct {
	Name   *string `json:"name"`
	Phone  *string `json:"phone"`
	Email  *string `json:"email"`
	Source *string `json:"source"`
	Notes  *string `json:"notes"`
	Status *string `json:"status"`
}

// Update merges patch into the lead.
func (s *LeadService) Update(ctx context.Context, id string, patch *LeadPatch) (*models.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.leadIndex(id)
	if i < 0 {
		return nil, utils.ErrLeadNotFound
	}
	lead := s.state.Leads[i]
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", utils.ErrInvalidInput)
		}
		lead.Name = name
	}
	if patch.Status != nil {
		st := models.LeadStatus(*patch.Status)
		if !st.Valid() {
			return nil, utils.ErrInvalidStatus
		}
		lead.Status = st
	}
	setTrimmed(&lead.Phone, patch.Phone)
	setTrimmed(&lead.Email, patch.Email)
	setTrimmed(&lead.Source, patch.Source)
	setTrimmed(&lead.Notes, patch.Notes)
	lead.UpdatedAt = s.now().UTC()

	next := s.cloneState()
	next.Leads[i] = lead
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}
	s.notifier.NotifyLead(sse.EventLeadUpdated, &lead)
	return &lead, nil
}

// Delete removes a lead.
func (s *LeadService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.leadIndex(id)
	if i < 0 {
		return utils.ErrLeadNotFound
	}
	removed := s.state.Leads[i]
	next := s.cloneState()
	next.Leads = append(next.Leads[:i], next.Leads[i+1:]...)
	if err := s.commit(ctx, next); err != nil {
		return err
	}
	s.notifier.NotifyLead(sse.EventLeadDeleted, &removed)
	return nil
}

// Stats counts leads per status. The conversion rate is closed_won over
// all leads, in percent to one decimal.
func (s *LeadService) Stats() models.LeadStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := models.LeadStats{ByStatus: make(map[models.LeadStatus]int, len(models.LeadStatuses))}
	for _, st := range models.LeadStatuses {
		stats.ByStatus[st] = 0
	}
	for _, l := range s.state.Leads {
		stats.Total++
		stats.ByStatus[l.Status]++
		if l.Status != models.LeadStatusClosedWon && l.Status != models.LeadStatusClosedLost {
			stats.Active++
		}
	}
	if stats.Total > 0 {
		won := decimal.NewFromInt(int64(stats.ByStatus[models.LeadStatusClosedWon]))
		rate := won.Div(decimal.NewFromInt(int64(stats.Total))).Mul(decimal.NewFromInt(100)).Round(1)
		stats.ConversionRate = rate.InexactFloat64()
	}
	return stats
}

// Templates returns the message templates.
func (s *LeadService) Templates() []models.MessageTemplate {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.MessageTemplate, len(s.state.Templates))
	copy(out, s.state.Templates)
	return out
}

// TemplateInput creates a message template.
type TemplateInput struct {
	Name    string `json:"name" binding:"required"`
	Content string `json:"content" binding:"required"`
	Type    string `json:"type"`
}

// AddTemplate stores a new template. Type defaults to whatsapp.
func (s *LeadService) AddTemplate(ctx context.Context, in *TemplateInput) (*models.MessageTemplate, error) {
	name, content := strings.TrimSpace(in.Name), strings.TrimSpace(in.Content)
	if name == "" || content == "" {
		return nil, fmt.Errorf("%w: name and content are required", utils.ErrInvalidInput)
	}
	typ := strings.TrimSpace(in.Type)
	if typ == "" {
		typ = "whatsapp"
	}
	tpl := models.MessageTemplate{ID: utils.GenerateID(), Name: name, Content: content, Type: typ}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.cloneState()
	next.Templates = append(next.Templates, tpl)
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}
	return &tpl, nil
}

// RenderTemplate substitutes {{name}} with the lead name.
func RenderTemplate(content string, lead models.Lead) string {
	return strings.ReplaceAll(content, "{{name}}", lead.Name)
}

// LeadMessage is a rendered outreach message.
type LeadMessage struct {
	LeadID     string `json:"leadId"`
	TemplateID string `json:"templateId"`
	Text       string `json:"text"`
	URL        string `json:"url"`
	Sent       bool   `json:"sent"`
	MessageID  string `json:"messageId,omitempty"`
}

// Message renders a template for a lead and, when send is true, pushes it
// through WhatsApp and stamps the lead's last contact time.
func (s *LeadService) Message(ctx context.Context, leadID, templateID string, send bool) (*LeadMessage, error) {
	lead, err := s.Get(leadID)
	if err != nil {
		return nil, err
	}
	tpl, err := s.template(templateID)
	if err != nil {
		return nil, err
	}

	text := RenderTemplate(tpl.Content, *lead)
	phone := whatsapp.DigitsOnly(lead.Phone)
	msg := &LeadMessage{
		LeadID:     lead.ID,
		TemplateID: tpl.ID,
		Text:       text,
		URL:        export.ShareURL(phone, text),
	}
	if !send {
		return msg, nil
	}

	if s.messenger == nil {
		return nil, utils.ErrMessagingDisabled
	}
	if phone == "" {
		return nil, utils.ErrNoRecipient
	}
	id, err := s.messenger.SendText(ctx, phone, text)
	if err != nil {
		return nil, err
	}
	msg.Sent = true
	msg.MessageID = id

	if err := s.touch(ctx, lead.ID); err != nil {
		log.Warn().Err(err).Str("lead_id", lead.ID).Msg("Failed to record last contact")
	}
	return msg, nil
}

// CaptureInbound records an inbound WhatsApp message. A known phone number
// updates that lead's last contact; an unknown one creates a new lead with
// source "whatsapp".
func (s *LeadService) CaptureInbound(ctx context.Context, phone, name, text string) (*models.Lead, bool, error) {
	digits := whatsapp.DigitsOnly(phone)
	if digits == "" {
		return nil, false, utils.ErrNoRecipient
	}

	s.mu.Lock()
	for i, l := range s.state.Leads {
		if whatsapp.DigitsOnly(l.Phone) != digits {
			continue
		}
		now := s.now().UTC()
		l.LastContact = &now
		l.UpdatedAt = now
		next := s.cloneState()
		next.Leads[i] = l
		err := s.commit(ctx, next)
		s.mu.Unlock()
		if err != nil {
			return nil, false, err
		}
		s.notifier.NotifyLead(sse.EventLeadUpdated, &l)
		return &l, false, nil
	}
	s.mu.Unlock()

	if strings.TrimSpace(name) == "" {
		name = "+" + digits
	}
	lead, err := s.Create(ctx, &LeadInput{Name: name, Phone: "+" + digits, Source: "whatsapp", Notes: text})
	if err != nil {
		return nil, false, err
	}
	return lead, true, nil
}

// Notifications returns notifications that have not expired.
func (s *LeadService) Notifications() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	out := []models.Notification{}
	for _, n := range s.state.Notifications {
		if now.Before(n.ExpiresAt) {
			out = append(out, n)
		}
	}
	return out
}

// DismissNotification removes a notification.
func (s *LeadService) DismissNotification(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.cloneState()
	kept := next.Notifications[:0]
	for _, n := range next.Notifications {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	if len(kept) == len(s.state.Notifications) {
		return utils.ErrNotificationGone
	}
	next.Notifications = kept
	return s.commit(ctx, next)
}

// SweepExpired drops expired notifications and returns how many were removed.
func (s *LeadService) SweepExpired(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	next := s.cloneState()
	kept := next.Notifications[:0]
	for _, n := range next.Notifications {
		if now.Before(n.ExpiresAt) {
			kept = append(kept, n)
		}
	}
	removed := len(s.state.Notifications) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	next.Notifications = kept
	if err := s.commit(ctx, next); err != nil {
		return 0, err
	}
	return removed, nil
}

// LeadsCreatedBetween returns leads created in [from, to), oldest first.
func (s *LeadService) LeadsCreatedBetween(from, to time.Time) []models.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Lead
	for _, l := range s.state.Leads {
		if !l.CreatedAt.Before(from) && l.CreatedAt.Before(to) {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (s *LeadService) touch(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.leadIndex(id)
	if i < 0 {
		return utils.ErrLeadNotFound
	}
	now := s.now().UTC()
	next := s.cloneState()
	next.Leads[i].LastContact = &now
	next.Leads[i].UpdatedAt = now
	return s.commit(ctx, next)
}

func (s *LeadService) template(id string) (models.MessageTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.state.Templates {
		if t.ID == id {
			return t, nil
		}
	}
	return models.MessageTemplate{}, utils.ErrTemplateNotFound
}

func (s *LeadService) notification(message, typ string, now time.Time) models.Notification {
	return models.Notification{
		ID:        utils.GenerateID(),
		Message:   message,
		Type:      typ,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
}

// leadIndex must be called with mu held.
func (s *LeadService) leadIndex(id string) int {
	for i, l := range s.state.Leads {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// cloneState must be called with mu held.
func (s *LeadService) cloneState() models.CRMState {
	next := models.CRMState{
		Leads:         make([]models.Lead, len(s.state.Leads)),
		Templates:     make([]models.MessageTemplate, len(s.state.Templates)),
		Notifications: make([]models.Notification, len(s.state.Notifications)),
	}
	copy(next.Leads, s.state.Leads)
	copy(next.Templates, s.state.Templates)
	copy(next.Notifications, s.state.Notifications)
	return next
}

// commit persists next and swaps it in. Must be called with mu held.
func (s *LeadService) commit(ctx context.Context, next models.CRMState) error {
	if err := s.store.Save(ctx, next); err != nil {
		return fmt.Errorf("failed to save crm state: %w", err)
	}
	s.state = next
	return nil
}

func setTrimmed(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

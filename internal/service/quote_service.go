package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/todopro_api/internal/export"
	"github.com/GTDGit/todopro_api/internal/models"
	"github.com/GTDGit/todopro_api/internal/pricing"
	"github.com/GTDGit/todopro_api/internal/sse"
	"github.com/GTDGit/todopro_api/internal/utils"
)

// QuotePersistence stores the ordered list of quotes and contracts.
type QuotePersistence interface {
	Load(ctx context.Context) ([]models.Quote, error)
	Save(ctx context.Context, quotes []models.Quote) error
}

// GenerateQuoteRequest prices the lines with the prorated policy and stores
// the result as a quote.
type GenerateQuoteRequest struct {
	CalculateRequest
	ClientInfo models.ClientInfo `json:"clientInfo"`
	Notes      string            `json:"notes"`
}

// QuoteService generates, stores and converts quotes. The mutex serialises
// read-modify-write cycles on the stored list.
type QuoteService struct {
	mu        sync.Mutex
	store     QuotePersistence
	calc      *CalculatorService
	assembler *pricing.Assembler
	notifier  sse.Notifier
}

func NewQuoteService(store QuotePersistence, calc *CalculatorService, assembler *pricing.Assembler, notifier sse.Notifier) *QuoteService {
	if notifier == nil {
		notifier = sse.NopNotifier{}
	}
	return &QuoteService{store: store, calc: calc, assembler: assembler, notifier: notifier}
}

// Generate prices and persists a new quote.
func (s *QuoteService) Generate(ctx context.Context, req *GenerateQuoteRequest) (*models.Quote, error) {
	client := trimClientInfo(req.ClientInfo)
	if client.Name == "" {
		return nil, fmt.Errorf("%w: client name is required", utils.ErrInvalidInput)
	}

	res, err := s.calc.Prorated(&req.CalculateRequest)
	if err != nil {
		return nil, err
	}
	if len(res.Lines) == 0 {
		return nil, fmt.Errorf("%w: select at least one product with units", utils.ErrInvalidInput)
	}

	q := s.assembler.Assemble(pricing.DraftFromProrated(client, req.days(), strings.TrimSpace(req.Notes), *res))
	if err := s.append(ctx, q); err != nil {
		return nil, err
	}

	log.Info().Str("quote_id", q.ID).Float64("final_total", q.FinalTotal).Int("lines", len(q.SelectedProducts)).Msg("Quote generated")
	s.notifier.NotifyQuote(sse.EventQuoteCreated, &q)
	return &q, nil
}

// List returns stored records matching search (client name or formatted
// date). An empty search returns everything.
func (s *QuoteService) List(ctx context.Context, search string) ([]models.Quote, error) {
	quotes, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load quotes: %w", err)
	}
	search = strings.TrimSpace(search)
	if search == "" {
		return quotes, nil
	}
	out := make([]models.Quote, 0, len(quotes))
	for _, q := range quotes {
		if export.MatchesSearch(q, search) {
			out = append(out, q)
		}
	}
	return out, nil
}

// Get returns one record by id.
func (s *QuoteService) Get(ctx context.Context, id string) (*models.Quote, error) {
	quotes, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load quotes: %w", err)
	}
	for i := range quotes {
		if quotes[i].ID == id {
			return &quotes[i], nil
		}
	}
	return nil, utils.ErrQuoteNotFound
}

// Delete removes one record by id.
func (s *QuoteService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	quotes, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load quotes: %w", err)
	}
	idx := -1
	for i := range quotes {
		if quotes[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return utils.ErrQuoteNotFound
	}
	removed := quotes[idx]
	quotes = append(quotes[:idx], quotes[idx+1:]...)
	if err := s.store.Save(ctx, quotes); err != nil {
		return fmt.Errorf("failed to save quotes: %w", err)
	}
	s.notifier.NotifyQuote(sse.EventQuoteDeleted, &removed)
	return nil
}

// ConvertToContract appends a contract copy of the quote. The source quote
// stays in the list unchanged.
func (s *QuoteService) ConvertToContract(ctx context.Context, id string) (*models.Quote, error) {
	q, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if q.IsContract() {
		return nil, utils.ErrAlreadyContract
	}

	contract := s.assembler.ConvertToContract(*q)
	if err := s.append(ctx, contract); err != nil {
		return nil, err
	}
	log.Info().Str("quote_id", q.ID).Str("contract_id", contract.ID).Msg("Quote converted to contract")
	s.notifier.NotifyQuote(sse.EventQuoteConverted, &contract)
	return &contract, nil
}

// CreatedBetween returns records created in [from, to).
func (s *QuoteService) CreatedBetween(ctx context.Context, from, to time.Time) ([]models.Quote, error) {
	quotes, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load quotes: %w", err)
	}
	var out []models.Quote
	for _, q := range quotes {
		t := q.CreatedTime()
		if !t.Before(from) && t.Before(to) {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *QuoteService) append(ctx context.Context, q models.Quote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	quotes, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load quotes: %w", err)
	}
	quotes = append(quotes, q)
	if err := s.store.Save(ctx, quotes); err != nil {
		return fmt.Errorf("failed to save quotes: %w", err)
	}
	return nil
}

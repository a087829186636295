package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/todopro_api/internal/models"
	"github.com/GTDGit/todopro_api/internal/pricing"
	"github.com/GTDGit/todopro_api/internal/sse"
	"github.com/GTDGit/todopro_api/internal/utils"
)

// CatalogPersistence stores the editable catalog state.
type CatalogPersistence interface {
	LoadProducts(ctx context.Context) ([]models.Product, bool, error)
	SaveProducts(ctx context.Context, products []models.Product) error
	LoadAdminFee(ctx context.Context) (float64, bool, error)
	SaveAdminFee(ctx context.Context, fee float64) error
	LoadClientDetails(ctx context.Context) (models.ClientInfo, bool, error)
	SaveClientDetails(ctx context.Context, info models.ClientInfo) error
	ClearClientDetails(ctx context.Context) error
}

// CatalogService owns the product list and admin fee used by the calculator.
// Reads are served from an in-process snapshot guarded by a RWMutex; every
// edit is written through to the store.
type CatalogService struct {
	mu         sync.RWMutex
	store      CatalogPersistence
	notifier   sse.Notifier
	products   []models.Product
	adminFee   float64
	defaultFee float64
}

func NewCatalogService(store CatalogPersistence, notifier sse.Notifier, defaultFee float64) *CatalogService {
	if notifier == nil {
		notifier = sse.NopNotifier{}
	}
	return &CatalogService{
		store:      store,
		notifier:   notifier,
		products:   pricing.DefaultProducts(),
		adminFee:   defaultFee,
		defaultFee: defaultFee,
	}
}

// Load hydrates the snapshot from the store, falling back to the seed
// catalog and the default admin fee.
func (s *CatalogService) Load(ctx context.Context) error {
	products, found, err := s.store.LoadProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}
	fee, feeFound, err := s.store.LoadAdminFee(ctx)
	if err != nil {
		return fmt.Errorf("failed to load admin fee: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if found && len(products) > 0 {
		s.products = products
	}
	if feeFound {
		s.adminFee = fee
	}
	log.Info().Int("products", len(s.products)).Float64("admin_fee", s.adminFee).Bool("persisted", found).Msg("Catalog loaded")
	return nil
}

// Snapshot returns an immutable catalog and the admin fee for one calculation.
func (s *CatalogService) Snapshot() (*pricing.Catalog, float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pricing.NewCatalog(s.products), s.adminFee
}

// Products returns a copy of the product list.
func (s *CatalogService) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// AdminFee returns the current admin fee.
func (s *CatalogService) AdminFee() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.adminFee
}

// ProductInput is an edited catalog row. Numeric fields accept text.
type ProductInput struct {
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	PricePerUnit pricing.Numeric `json:"pricePerUnit"`
	PricePerDay  pricing.Numeric `json:"pricePerDay"`
	StockNeeded  pricing.Numeric `json:"stockNeeded"`
}

func (in ProductInput) toProduct() models.Product {
	name := strings.TrimSpace(in.Name)
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if code == "" {
		code = strings.ToUpper(strings.Join(strings.Fields(name), ""))
	}
	return models.Product{
		Code:         code,
		Name:         name,
		PricePerUnit: clampZero(in.PricePerUnit.Float()),
		PricePerDay:  clampZero(in.PricePerDay.Float()),
		StockNeeded:  clampZero(in.StockNeeded.Float()),
	}
}

// UpdateProduct replaces the product at index.
func (s *CatalogService) UpdateProduct(ctx context.Context, index int, in ProductInput) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := pricing.Lookup(s.products, index)
	if err != nil {
		return models.Product{}, utils.ErrProductNotFound
	}
	p := in.toProduct()
	if p.Name == "" {
		p.Name = current.Name
	}
	if strings.TrimSpace(in.Code) == "" {
		p.Code = current.Code
	}

	next := make([]models.Product, len(s.products))
	copy(next, s.products)
	next[index] = p
	if err := s.store.SaveProducts(ctx, next); err != nil {
		return models.Product{}, fmt.Errorf("failed to save products: %w", err)
	}
	s.products = next
	s.notifier.NotifyCatalog()
	return p, nil
}

// AddProducts appends rows, dropping any that carry neither a name nor a
// price and stock rate. It returns the new product list.
func (s *CatalogService) AddProducts(ctx context.Context, rows []ProductInput) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.Product, len(s.products), len(s.products)+len(rows))
	copy(next, s.products)
	added := 0
	for _, row := range rows {
		p := row.toProduct()
		if p.Name == "" || p.IsBlank() {
			continue
		}
		next = append(next, p)
		added++
	}
	if added == 0 {
		return nil, fmt.Errorf("%w: no product rows with a name and a price or stock rate", utils.ErrInvalidInput)
	}
	if err := s.store.SaveProducts(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save products: %w", err)
	}
	s.products = next
	s.notifier.NotifyCatalog()
	return copyProducts(next), nil
}

// SetAdminFee parses free text and stores the fee. Malformed input becomes 0.
func (s *CatalogService) SetAdminFee(ctx context.Context, raw string) (float64, error) {
	fee := clampZero(pricing.ParseNumericOrZero(raw))

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.SaveAdminFee(ctx, fee); err != nil {
		return 0, fmt.Errorf("failed to save admin fee: %w", err)
	}
	s.adminFee = fee
	s.notifier.NotifyCatalog()
	return fee, nil
}

// Reset restores the seed catalog and the default admin fee.
func (s *CatalogService) Reset(ctx context.Context) error {
	seed := pricing.DefaultProducts()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.SaveProducts(ctx, seed); err != nil {
		return fmt.Errorf("failed to save products: %w", err)
	}
	if err := s.store.SaveAdminFee(ctx, s.defaultFee); err != nil {
		return fmt.Errorf("failed to save admin fee: %w", err)
	}
	s.products = seed
	s.adminFee = s.defaultFee
	s.notifier.NotifyCatalog()
	log.Info().Msg("Catalog reset to seed")
	return nil
}

// SaveClientDetails stores the client form. A form with every field blank
// is not saved; saved reports whether a write happened.
func (s *CatalogService) SaveClientDetails(ctx context.Context, info models.ClientInfo) (saved bool, err error) {
	info = trimClientInfo(info)
	if info.IsEmpty() {
		return false, nil
	}
	if err := s.store.SaveClientDetails(ctx, info); err != nil {
		return false, fmt.Errorf("failed to save client details: %w", err)
	}
	return true, nil
}

// ClientDetails returns the saved client form.
func (s *CatalogService) ClientDetails(ctx context.Context) (models.ClientInfo, bool, error) {
	return s.store.LoadClientDetails(ctx)
}

// ClearClientDetails removes the saved client form.
func (s *CatalogService) ClearClientDetails(ctx context.Context) error {
	return s.store.ClearClientDetails(ctx)
}

func trimClientInfo(c models.ClientInfo) models.ClientInfo {
	return models.ClientInfo{
		Name:    strings.TrimSpace(c.Name),
		Address: strings.TrimSpace(c.Address),
		Phone:   strings.TrimSpace(c.Phone),
		Email:   strings.TrimSpace(c.Email),
		DieNie:  strings.TrimSpace(c.DieNie),
	}
}

func copyProducts(in []models.Product) []models.Product {
	out := make([]models.Product, len(in))
	copy(out, in)
	return out
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

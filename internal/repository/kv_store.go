package repository

import (
	"context"

	"github.com/GTDGit/todopro_api/internal/cache"
	"github.com/GTDGit/todopro_api/internal/models"
)

// Storage keys of the persisted calculator state.
const (
	KeyProducts      = "products"
	KeyAdminFee      = "adminFee"
	KeyQuotes        = "quotes"
	KeyCRMState      = "crm-state"
	KeyClientDetails = "clientDetails"
)

// CatalogStore persists the editable product list, the admin fee and the
// saved client details.
type CatalogStore struct {
	products *cache.Document[[]models.Product]
	adminFee *cache.Document[float64]
	client   *cache.Document[models.ClientInfo]
}

func NewCatalogStore(store cache.Store) *CatalogStore {
	return &CatalogStore{
		products: cache.NewDocument[[]models.Product](store, KeyProducts),
		adminFee: cache.NewDocument[float64](store, KeyAdminFee),
		client:   cache.NewDocument[models.ClientInfo](store, KeyClientDetails),
	}
}

func (s *CatalogStore) LoadProducts(ctx context.Context) ([]models.Product, bool, error) {
	return s.products.Load(ctx)
}

func (s *CatalogStore) SaveProducts(ctx context.Context, products []models.Product) error {
	return s.products.Save(ctx, products)
}

func (s *CatalogStore) LoadAdminFee(ctx context.Context) (float64, bool, error) {
	return s.adminFee.Load(ctx)
}

func (s *CatalogStore) SaveAdminFee(ctx context.Context, fee float64) error {
	return s.adminFee.Save(ctx, fee)
}

func (s *CatalogStore) LoadClientDetails(ctx context.Context) (models.ClientInfo, bool, error) {
	return s.client.Load(ctx)
}

func (s *CatalogStore) SaveClientDetails(ctx context.Context, info models.ClientInfo) error {
	return s.client.Save(ctx, info)
}

func (s *CatalogStore) ClearClientDetails(ctx context.Context) error {
	return s.client.Clear(ctx)
}

// QuoteStore persists quotes and contracts as one ordered list.
type QuoteStore struct {
	doc *cache.Document[[]models.Quote]
}

func NewQuoteStore(store cache.Store) *QuoteStore {
	return &QuoteStore{doc: cache.NewDocument[[]models.Quote](store, KeyQuotes)}
}

// Load returns the stored list, empty when nothing has been saved.
func (s *QuoteStore) Load(ctx context.Context) ([]models.Quote, error) {
	quotes, _, err := s.doc.Load(ctx)
	if err != nil {
		return nil, err
	}
	if quotes == nil {
		quotes = []models.Quote{}
	}
	return quotes, nil
}

func (s *QuoteStore) Save(ctx context.Context, quotes []models.Quote) error {
	return s.doc.Save(ctx, quotes)
}

// CRMStore persists the leads CRM document.
type CRMStore struct {
	doc *cache.Document[models.CRMState]
}

func NewCRMStore(store cache.Store) *CRMStore {
	return &CRMStore{doc: cache.NewDocument[models.CRMState](store, KeyCRMState)}
}

func (s *CRMStore) Load(ctx context.Context) (models.CRMState, bool, error) {
	return s.doc.Load(ctx)
}

func (s *CRMStore) Save(ctx context.Context, state models.CRMState) error {
	return s.doc.Save(ctx, state)
}

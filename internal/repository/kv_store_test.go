package repository

import (
	"context"
	"testing"

	"github.com/GTDGit/todopro_api/internal/cache"
	"github.com/GTDGit/todopro_api/internal/models"
)

func TestCatalogStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	mem := cache.NewMemoryStore()
	s := NewCatalogStore(mem)

	if _, found, err := s.LoadProducts(ctx); err != nil || found {
		t.Fatalf("expected empty store, found=%v err=%v", found, err)
	}

	products := []models.Product{{Code: "PEXT", Name: "Pintura.ext", PricePerUnit: 1.67, StockNeeded: 0.25}}
	if err := s.SaveProducts(ctx, products); err != nil {
		t.Fatalf("save products: %v", err)
	}
	if err := s.SaveAdminFee(ctx, 75); err != nil {
		t.Fatalf("save fee: %v", err)
	}

	got, found, err := s.LoadProducts(ctx)
	if err != nil || !found || len(got) != 1 || got[0].PricePerUnit != 1.67 {
		t.Fatalf("unexpected products %+v found=%v err=%v", got, found, err)
	}
	fee, found, err := s.LoadAdminFee(ctx)
	if err != nil || !found || fee != 75 {
		t.Fatalf("unexpected fee %v found=%v err=%v", fee, found, err)
	}

	// The stored keys are the ones the web client used.
	for _, key := range []string{KeyProducts, KeyAdminFee} {
		if ok, _ := mem.Exists(ctx, key); !ok {
			t.Fatalf("key %s not written", key)
		}
	}
}

func TestQuoteStore_LoadEmpty(t *testing.T) {
	quotes, err := NewQuoteStore(cache.NewMemoryStore()).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quotes == nil || len(quotes) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", quotes)
	}
}

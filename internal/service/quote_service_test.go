package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/GTDGit/todopro_api/internal/models"
	"github.com/GTDGit/todopro_api/internal/pricing"
	"github.com/GTDGit/todopro_api/internal/repository"
	"github.com/GTDGit/todopro_api/internal/sse"
	"github.com/GTDGit/todopro_api/internal/utils"
)

func generateRequest(name string, lines ...pricing.LineInput) *GenerateQuoteRequest {
	return &GenerateQuoteRequest{
		CalculateRequest: CalculateRequest{Days: 2, Lines: lines},
		ClientInfo:       models.ClientInfo{Name: name, Phone: "+34 600 000 111"},
		Notes:            "  planta baja ",
	}
}

func TestQuoteService_GenerateAndPersist(t *testing.T) {
	ctx := context.Background()
	f := newQuoteFixture()

	q, err := f.quotes.Generate(ctx, generateRequest("Ana", codeLine("CAPAG10", 3), codeLine("PEXT", 4)))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if q.Type != models.QuoteTypeQuote || q.Notes != "planta baja" || len(q.SelectedProducts) != 2 {
		t.Fatalf("unexpected quote %+v", q)
	}
	var sum float64
	for _, l := range q.SelectedProducts {
		sum += l.TotalPrice
	}
	if math.Abs(sum-q.Subtotal) > 1e-9 || math.Abs(q.Subtotal+q.VAT-q.FinalTotal) > 1e-9 {
		t.Fatalf("quote totals inconsistent: %+v", q)
	}
	if !f.notifier.has(sse.EventQuoteCreated) {
		t.Fatalf("quote.created not broadcast")
	}

	stored, err := repository.NewQuoteStore(f.store).Load(ctx)
	if err != nil || len(stored) != 1 || stored[0].ID != q.ID {
		t.Fatalf("quote not persisted under the quotes key: %+v err=%v", stored, err)
	}
}

func TestQuoteService_GenerateValidation(t *testing.T) {
	ctx := context.Background()
	f := newQuoteFixture()

	if _, err := f.quotes.Generate(ctx, generateRequest("", codeLine("PEXT", 1))); !errors.Is(err, utils.ErrInvalidInput) {
		t.Fatalf("missing name: got %v", err)
	}
	if _, err := f.quotes.Generate(ctx, generateRequest("Ana", codeLine("PEXT", 0))); !errors.Is(err, utils.ErrInvalidInput) {
		t.Fatalf("no priced lines: got %v", err)
	}
	if _, err := f.quotes.Generate(ctx, generateRequest("Ana", codeLine("NOPE", 2))); !errors.Is(err, utils.ErrInvalidInput) {
		t.Fatalf("only unresolved lines: got %v", err)
	}
}

func TestQuoteService_ConvertToContract(t *testing.T) {
	ctx := context.Background()
	f := newQuoteFixture()

	q, err := f.quotes.Generate(ctx, generateRequest("Ana", codeLine("DPC15", 10)))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	f.clock.Advance(time.Hour)

	c, err := f.quotes.ConvertToContract(ctx, q.ID)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if c.ID == q.ID || c.Type != models.QuoteTypeContract || c.CreatedAt == q.CreatedAt {
		t.Fatalf("contract must be a new record: %+v", c)
	}
	if c.Subtotal != q.Subtotal || c.VAT != q.VAT || c.FinalTotal != q.FinalTotal {
		t.Fatalf("contract figures changed")
	}

	all, _ := f.quotes.List(ctx, "")
	if len(all) != 2 || all[0].Type != models.QuoteTypeQuote || all[1].Type != models.QuoteTypeContract {
		t.Fatalf("expected quote then contract, got %+v", all)
	}

	if _, err := f.quotes.ConvertToContract(ctx, c.ID); !errors.Is(err, utils.ErrAlreadyContract) {
		t.Fatalf("converting a contract: got %v", err)
	}
	if _, err := f.quotes.ConvertToContract(ctx, "missing"); !errors.Is(err, utils.ErrQuoteNotFound) {
		t.Fatalf("missing id: got %v", err)
	}
	if !f.notifier.has(sse.EventQuoteConverted) {
		t.Fatalf("quote.converted not broadcast")
	}
}

func TestQuoteService_ListSearchAndDelete(t *testing.T) {
	ctx := context.Background()
	f := newQuoteFixture()

	a, _ := f.quotes.Generate(ctx, generateRequest("Ana López", codeLine("PINT", 5)))
	f.clock.Advance(48 * time.Hour)
	_, _ = f.quotes.Generate(ctx, generateRequest("Luis", codeLine("PINT", 5)))

	byName, _ := f.quotes.List(ctx, "lópez")
	if len(byName) != 1 || byName[0].ID != a.ID {
		t.Fatalf("name search = %+v", byName)
	}
	byDate, _ := f.quotes.List(ctx, "12/05/2024")
	if len(byDate) != 1 || byDate[0].ClientInfo.Name != "Luis" {
		t.Fatalf("date search = %+v", byDate)
	}

	if err := f.quotes.Delete(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.quotes.Get(ctx, a.ID); !errors.Is(err, utils.ErrQuoteNotFound) {
		t.Fatalf("deleted quote still returned: %v", err)
	}
	if err := f.quotes.Delete(ctx, a.ID); !errors.Is(err, utils.ErrQuoteNotFound) {
		t.Fatalf("second delete: got %v", err)
	}
	rest, _ := f.quotes.List(ctx, "")
	if len(rest) != 1 {
		t.Fatalf("expected one quote left, got %d", len(rest))
	}
}

func TestQuoteService_CreatedBetween(t *testing.T) {
	ctx := context.Background()
	f := newQuoteFixture()

	start := f.clock.Now()
	_, _ = f.quotes.Generate(ctx, generateRequest("Ana", codeLine("PINT", 1)))
	f.clock.Advance(25 * time.Hour)
	_, _ = f.quotes.Generate(ctx, generateRequest("Luis", codeLine("PINT", 1)))

	day, err := f.quotes.CreatedBetween(ctx, start, start.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if len(day) != 1 || day[0].ClientInfo.Name != "Ana" {
		t.Fatalf("unexpected range result %+v", day)
	}
}

package pricing

import (
	"time"

	"github.com/GTDGit/todopro_api/internal/models"
)

// QuoteDraft carries everything the assembler needs to build a quote.
type QuoteDraft struct {
	Client     models.ClientInfo
	Days       float64
	Lines      []models.QuoteLine
	Subtotal   float64
	VAT        float64
	FinalTotal float64
	Notes      string
}

// DraftFromProrated builds a draft from a prorated calculation.
func DraftFromProrated(client models.ClientInfo, days float64, notes string, res ProratedResult) QuoteDraft {
	return QuoteDraft{
		Client:     client,
		Days:       days,
		Lines:      res.QuoteLines(),
		Subtotal:   res.Subtotal,
		VAT:        res.VAT,
		FinalTotal: res.FinalTotal,
		Notes:      notes,
	}
}

// Assembler stamps drafts into quote records.
type Assembler struct {
	now   func() time.Time
	newID func(time.Time) string
}

// NewAssembler returns an Assembler using the given clock and id generator.
func NewAssembler(now func() time.Time, newID func(time.Time) string) *Assembler {
	return &Assembler{now: now, newID: newID}
}

// Assemble creates a new quote of type "quote" from the draft.
func (a *Assembler) Assemble(d QuoteDraft) models.Quote {
	ts := a.now().UTC()
	return models.Quote{
		ID:               a.newID(ts),
		CreatedAt:        ts.Format(models.TimestampLayout),
		ClientInfo:       d.Client,
		Days:             d.Days,
		SelectedProducts: copyLines(d.Lines),
		Subtotal:         d.Subtotal,
		VAT:              d.VAT,
		FinalTotal:       d.FinalTotal,
		Notes:            d.Notes,
		Type:             models.QuoteTypeQuote,
	}
}

// ConvertToContract returns a new contract record carrying the quote's
// figures unchanged. Only id, createdAt and type differ from the source.
func (a *Assembler) ConvertToContract(q models.Quote) models.Quote {
	ts := a.now().UTC()
	contract := q
	contract.ID = a.newID(ts)
	contract.CreatedAt = ts.Format(models.TimestampLayout)
	contract.SelectedProducts = copyLines(q.SelectedProducts)
	contract.Type = models.QuoteTypeContract
	return contract
}

func copyLines(lines []models.QuoteLine) []models.QuoteLine {
	out := make([]models.QuoteLine, len(lines))
	copy(out, lines)
	return out
}

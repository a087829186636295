package models

import "time"

// QuoteType distinguishes an offer from an accepted contract.
type QuoteType string

const (
	QuoteTypeQuote    QuoteType = "quote"
	QuoteTypeContract QuoteType = "contract"
)

// TimestampLayout is the ISO-8601 UTC layout used for quote timestamps.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// QuoteLine is one priced product line of a quote.
// Price is the per-unit, per-day price after markup.
type QuoteLine struct {
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	Price      float64 `json:"price"`
	TotalPrice float64 `json:"totalPrice"`
}

// Quote is an immutable priced offer. Converting it to a contract produces a
// new record; the original is never modified.
type Quote struct {
	ID               string      `json:"id"`
	CreatedAt        string      `json:"createdAt"`
	ClientInfo       ClientInfo  `json:"clientInfo"`
	Days             float64     `json:"days"`
	SelectedProducts []QuoteLine `json:"selectedProducts"`
	Subtotal         float64     `json:"subtotal"`
	VAT              float64     `json:"vat"`
	FinalTotal       float64     `json:"finalTotal"`
	Notes            string      `json:"notes"`
	Type             QuoteType   `json:"type"`
}

// CreatedTime parses CreatedAt. A malformed value yields the zero time.
func (q Quote) CreatedTime() time.Time {
	t, err := time.Parse(time.RFC3339Nano, q.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

// IsContract reports whether the record is a contract.
func (q Quote) IsContract() bool {
	return q.Type == QuoteTypeContract
}

package models

// Product is a catalog entry used by the quote calculator.
// The same shape is stored in the products table and in the persisted catalog.
type Product struct {
	ID           int     `db:"id" json:"id,omitempty"`
	Code         string  `db:"code" json:"code"`
	Name         string  `db:"name" json:"name"`
	PricePerUnit float64 `db:"price_per_unit" json:"pricePerUnit"`
	PricePerDay  float64 `db:"price_per_day" json:"pricePerDay,omitempty"`
	StockNeeded  float64 `db:"stock_needed" json:"stockNeeded"`
}

// DayRate returns the per-day price used by prorated pricing.
// Catalog rows that only carry a unit price reuse it as the day rate.
func (p Product) DayRate() float64 {
	if p.PricePerDay != 0 {
		return p.PricePerDay
	}
	return p.PricePerUnit
}

// IsBlank reports whether the product carries neither a price nor a stock rate.
func (p Product) IsBlank() bool {
	return p.PricePerUnit == 0 && p.PricePerDay == 0 && p.StockNeeded == 0
}

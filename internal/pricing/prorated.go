package pricing

import "github.com/GTDGit/todopro_api/internal/models"

// ProratedInput is the snapshot priced by CalculateProrated.
type ProratedInput struct {
	Catalog  *Catalog
	AdminFee float64
	Days     float64
	Lines    []LineInput
}

// ProratedLine is a priced line under the prorated policy.
type ProratedLine struct {
	Slot         int     `json:"slot"`
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity"`
	BasePrice    float64 `json:"basePrice"`
	LaborShare   float64 `json:"laborShare"`
	AdminShare   float64 `json:"adminShare"`
	LineSubtotal float64 `json:"lineSubtotal"`
	Commission   float64 `json:"commission"`
	LineTotal    float64 `json:"lineTotal"`
	// UnitDayPrice is the post-markup price per unit per day.
	UnitDayPrice float64 `json:"unitDayPrice"`
}

// ProratedResult is the full breakdown of a prorated calculation.
type ProratedResult struct {
	Policy          Policy         `json:"policy"`
	Lines           []ProratedLine `json:"lines"`
	UnresolvedSlots []int          `json:"unresolvedSlots"`
	TotalUnits      float64        `json:"totalUnits"`
	TotalLabor      float64        `json:"totalLabor"`
	LaborPerUnit    float64        `json:"laborPerUnit"`
	AdminPerUnit    float64        `json:"adminPerUnit"`
	Summary
}

// CalculateProrated prices each unit per day and spreads the day-rate labor
// and the admin fee over all units in proportion to each line's quantity.
// Commission is charged per line; the subtotal is the sum of line totals.
func CalculateProrated(in ProratedInput) ProratedResult {
	resolved := ResolveLines(in.Catalog, in.Lines)

	var totalUnits float64
	for _, l := range resolved {
		if l.Contributes() {
			totalUnits += l.Units
		}
	}
	denominator := totalUnits
	if denominator == 0 {
		denominator = 1
	}

	res := ProratedResult{
		Policy:          PolicyProrated,
		Lines:           []ProratedLine{},
		UnresolvedSlots: unresolvedSlots(resolved),
		TotalUnits:      totalUnits,
		TotalLabor:      LaborCost(in.Days),
	}
	res.LaborPerUnit = res.TotalLabor / denominator
	res.AdminPerUnit = in.AdminFee / denominator

	var subtotal float64
	for _, l := range resolved {
		if !l.Contributes() {
			continue
		}
		line := ProratedLine{
			Slot:       l.Slot,
			Code:       l.Product.Code,
			Name:       l.Product.Name,
			Quantity:   l.Units,
			BasePrice:  l.Product.DayRate() * in.Days * l.Units,
			LaborShare: res.LaborPerUnit * l.Units,
			AdminShare: res.AdminPerUnit * l.Units,
		}
		line.LineSubtotal = line.BasePrice + line.LaborShare + line.AdminShare
		line.Commission = Commission(line.LineSubtotal)
		line.LineTotal = line.LineSubtotal + line.Commission
		if in.Days != 0 {
			line.UnitDayPrice = (line.LineTotal / line.Quantity) / in.Days
		}
		subtotal += line.LineTotal
		res.Lines = append(res.Lines, line)
	}

	res.Summary = Summarize(subtotal)
	return res
}

// Finite reports whether every amount in the result is a real number.
func (r ProratedResult) Finite() bool {
	if !r.Summary.finite() || !finite(r.TotalUnits, r.TotalLabor, r.LaborPerUnit, r.AdminPerUnit) {
		return false
	}
	for _, l := range r.Lines {
		if !finite(l.Quantity, l.BasePrice, l.LaborShare, l.AdminShare, l.LineSubtotal, l.Commission, l.LineTotal, l.UnitDayPrice) {
			return false
		}
	}
	return true
}

// QuoteLines converts priced lines to the line shape stored on quotes.
func (r ProratedResult) QuoteLines() []models.QuoteLine {
	out := make([]models.QuoteLine, 0, len(r.Lines))
	for _, l := range r.Lines {
		out = append(out, models.QuoteLine{
			Name:       l.Name,
			Quantity:   l.Quantity,
			Price:      l.UnitDayPrice,
			TotalPrice: l.LineTotal,
		})
	}
	return out
}

package pricing

import "math"

// Fixed business rates.
const (
	CommissionRate = 0.10
	VATRate        = 0.07
	DepositRate    = 0.5
	LaborDayRate   = 200.0
)

// Policy names a pricing strategy.
type Policy string

const (
	// PolicyFlat prices units at the unit price and adds labor, admin fee and
	// commission once over the whole quote.
	PolicyFlat Policy = "flat"
	// PolicyProrated prices units per day and spreads labor and admin fee
	// across lines before applying commission per line.
	PolicyProrated Policy = "prorated"
)

// Summary holds the tail of the markup pipeline.
type Summary struct {
	Subtotal        float64 `json:"subtotal"`
	VAT             float64 `json:"vat"`
	FinalTotal      float64 `json:"finalTotal"`
	RequiredDeposit float64 `json:"requiredDeposit"`
}

// Commission returns the commission owed on amount.
func Commission(amount float64) float64 {
	return amount * CommissionRate
}

// LaborCost returns the labor charge for a number of days.
func LaborCost(days float64) float64 {
	return days * LaborDayRate
}

// Summarize applies VAT and deposit to a subtotal.
func Summarize(subtotal float64) Summary {
	vat := subtotal * VATRate
	final := subtotal + vat
	return Summary{
		Subtotal:        subtotal,
		VAT:             vat,
		FinalTotal:      final,
		RequiredDeposit: RequiredDeposit(final),
	}
}

// RequiredDeposit is the share of the final total due up front.
func RequiredDeposit(finalTotal float64) float64 {
	return finalTotal * DepositRate
}

// finite reports whether every value is a real number. Extreme but valid
// inputs can overflow to ±Inf, which JSON cannot carry.
func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s Summary) finite() bool {
	return finite(s.Subtotal, s.VAT, s.FinalTotal, s.RequiredDeposit)
}

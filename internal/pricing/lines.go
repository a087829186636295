package pricing

import "github.com/GTDGit/todopro_api/internal/models"

// MaxLines is the number of product slots a quote can hold.
const MaxLines = 6

// Selection identifies a catalog product by code or, for older clients, by
// position in the current product list.
type Selection struct {
	ProductCode  string `json:"productCode,omitempty"`
	ProductIndex *Index `json:"productIndex,omitempty"`
}

// LineInput is one product slot as entered by the user.
type LineInput struct {
	Selection
	Units Numeric `json:"units"`
}

// LineStatus is the outcome of resolving a line against the catalog.
type LineStatus string

const (
	LineResolved   LineStatus = "resolved"
	LineZeroUnits  LineStatus = "zero_units"
	LineUnresolved LineStatus = "unresolved"
)

// ResolvedLine pairs an input slot with its catalog product.
type ResolvedLine struct {
	Slot    int
	Product models.Product
	Units   float64
	Status  LineStatus
	Err     error
}

// Contributes reports whether the line takes part in totals.
func (l ResolvedLine) Contributes() bool {
	return l.Status == LineResolved
}

// ResolveLines resolves every slot. Zero (or negative) units are reported as
// LineZeroUnits before the selection is looked at, so an empty slot with a
// stale selection is never flagged as unresolved.
func ResolveLines(catalog *Catalog, lines []LineInput) []ResolvedLine {
	out := make([]ResolvedLine, 0, len(lines))
	for i, in := range lines {
		units := nonNegative(in.Units.Float())
		line := ResolvedLine{Slot: i, Units: units}
		if units == 0 {
			line.Status = LineZeroUnits
			out = append(out, line)
			continue
		}
		p, err := catalog.Select(in.Selection)
		if err != nil {
			line.Status = LineUnresolved
			line.Err = err
			out = append(out, line)
			continue
		}
		line.Product = p
		line.Status = LineResolved
		out = append(out, line)
	}
	return out
}

// unresolvedSlots lists the slots that carried units but no valid product.
func unresolvedSlots(lines []ResolvedLine) []int {
	slots := []int{}
	for _, l := range lines {
		if l.Status == LineUnresolved {
			slots = append(slots, l.Slot)
		}
	}
	return slots
}

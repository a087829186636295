package pricing

// FlatInput is the snapshot priced by CalculateFlat.
type FlatInput struct {
	Catalog  *Catalog
	AdminFee float64
	Days     float64
	Lines    []LineInput
}

// FlatLine is a priced line under the flat policy.
type FlatLine struct {
	Slot      int     `json:"slot"`
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	Units     float64 `json:"units"`
	UnitPrice float64 `json:"unitPrice"`
	Cost      float64 `json:"cost"`
	Stock     float64 `json:"stock"`
}

// FlatResult is the full breakdown of a flat calculation.
type FlatResult struct {
	Policy           Policy      `json:"policy"`
	Lines            []FlatLine  `json:"lines"`
	UnresolvedSlots  []int       `json:"unresolvedSlots"`
	ProductCosts     float64     `json:"productCosts"`
	LaborCost        float64     `json:"laborCost"`
	RunningTotal     float64     `json:"runningTotal"`
	AdminCost        float64     `json:"adminCost"`
	Commission       float64     `json:"commission"`
	TotalStockNeeded float64     `json:"totalStockNeeded"`
	StockBreakdown   []StockItem `json:"stockBreakdown"`
	TotalStockCost   float64     `json:"totalStockCost"`
	Summary
}

// CalculateFlat prices lines at their unit price. Labor, the admin fee and
// commission are applied once at quote level:
//
//	runningTotal = Σ units×pricePerUnit + days×200
//	subtotal     = runningTotal + adminFee + 10% of runningTotal
func CalculateFlat(in FlatInput) FlatResult {
	resolved := ResolveLines(in.Catalog, in.Lines)

	res := FlatResult{
		Policy:          PolicyFlat,
		Lines:           []FlatLine{},
		UnresolvedSlots: unresolvedSlots(resolved),
	}
	for _, l := range resolved {
		if !l.Contributes() {
			continue
		}
		line := FlatLine{
			Slot:      l.Slot,
			Code:      l.Product.Code,
			Name:      l.Product.Name,
			Units:     l.Units,
			UnitPrice: l.Product.PricePerUnit,
			Cost:      l.Units * l.Product.PricePerUnit,
			Stock:     l.Units * l.Product.StockNeeded,
		}
		res.ProductCosts += line.Cost
		res.TotalStockNeeded += line.Stock
		res.Lines = append(res.Lines, line)
	}

	res.LaborCost = LaborCost(in.Days)
	res.RunningTotal = res.ProductCosts + res.LaborCost
	res.AdminCost = in.AdminFee
	res.Commission = Commission(res.RunningTotal)
	res.Summary = Summarize(res.RunningTotal + res.AdminCost + res.Commission)

	res.StockBreakdown = StockBreakdown(resolved)
	for _, item := range res.StockBreakdown {
		res.TotalStockCost += item.StockPrice
	}
	return res
}

// Finite reports whether every amount in the result is a real number.
func (r FlatResult) Finite() bool {
	if !r.Summary.finite() || !finite(r.ProductCosts, r.LaborCost, r.RunningTotal, r.AdminCost, r.Commission, r.TotalStockNeeded, r.TotalStockCost) {
		return false
	}
	for _, l := range r.Lines {
		if !finite(l.Units, l.UnitPrice, l.Cost, l.Stock) {
			return false
		}
	}
	for _, item := range r.StockBreakdown {
		if !finite(item.StockAmount, item.StockPrice) {
			return false
		}
	}
	return true
}

package pricing

// StockItem is the materials needed for one product name.
type StockItem struct {
	ProductName string  `json:"productName"`
	StockAmount float64 `json:"stockAmount"`
	StockPrice  float64 `json:"stockPrice"`
}

type stockAccumulator struct {
	order []string
	items map[string]*StockItem
}

func newStockAccumulator() *stockAccumulator {
	return &stockAccumulator{items: make(map[string]*StockItem)}
}

func (a *stockAccumulator) add(name string, amount, price float64) {
	item, ok := a.items[name]
	if !ok {
		item = &StockItem{ProductName: name}
		a.items[name] = item
		a.order = append(a.order, name)
	}
	item.StockAmount += amount
	item.StockPrice += price
}

// result returns items in first-seen order, dropping entries whose amount
// rounds to zero at two decimals.
func (a *stockAccumulator) result() []StockItem {
	out := make([]StockItem, 0, len(a.order))
	for _, name := range a.order {
		item := a.items[name]
		if Round2(item.StockAmount) <= 0 {
			continue
		}
		out = append(out, *item)
	}
	return out
}

// StockBreakdown aggregates stock consumption by product name across lines.
func StockBreakdown(lines []ResolvedLine) []StockItem {
	acc := newStockAccumulator()
	for _, l := range lines {
		if !l.Contributes() {
			continue
		}
		stock := l.Units * l.Product.StockNeeded
		if stock <= 0 {
			continue
		}
		acc.add(l.Product.Name, stock, stock*l.Product.PricePerUnit)
	}
	return acc.result()
}

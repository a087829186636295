package pricing

import (
	"math"
	"testing"

	"github.com/GTDGit/todopro_api/internal/models"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func idx(i int) *Index {
	v := Index(i)
	return &v
}

func line(code string, units float64) LineInput {
	return LineInput{Selection: Selection{ProductCode: code}, Units: Numeric(units)}
}

func indexLine(i int, units float64) LineInput {
	return LineInput{Selection: Selection{ProductIndex: idx(i)}, Units: Numeric(units)}
}

func testCatalog() *Catalog {
	return NewCatalog([]models.Product{
		{Code: "A", Name: "Scaffold A", PricePerDay: 10, PricePerUnit: 2, StockNeeded: 0.5},
		{Code: "B", Name: "Scaffold B", PricePerDay: 20, PricePerUnit: 4, StockNeeded: 1},
		{Code: "A2", Name: "Scaffold A", PricePerDay: 10, PricePerUnit: 2, StockNeeded: 0.25},
		{Code: "DUST", Name: "Dust", PricePerUnit: 1, StockNeeded: 0.001},
	})
}

package pricing

import "github.com/GTDGit/todopro_api/internal/models"

// DefaultAdminFee is the admin fee used until one is configured.
const DefaultAdminFee = 50.0

var defaultProducts = []models.Product{
	{Code: "DPC15", Name: "DPC15", PricePerUnit: 4.80, StockNeeded: 0.00},
	{Code: "DPC10", Name: "DPC10", PricePerUnit: 3.50, StockNeeded: 0.00},
	{Code: "DPC5", Name: "DPC5", PricePerUnit: 1.60, StockNeeded: 0.00},
	{Code: "CAPAG10", Name: "CapaG10", PricePerUnit: 7.00, StockNeeded: 1.00},
	{Code: "CAPAF5", Name: "CapaF5", PricePerUnit: 7.00, StockNeeded: 0.50},
	{Code: "PEXT", Name: "Pintura.ext", PricePerUnit: 1.67, StockNeeded: 0.25},
	{Code: "PINT", Name: "pintura.int", PricePerUnit: 1.00, StockNeeded: 0.20},
	{Code: "FCOAT", Name: "floorcoat", PricePerUnit: 4.44, StockNeeded: 0.33},
	{Code: "JUNTASL", Name: "JuntasL", PricePerUnit: 1.50, StockNeeded: 0.50},
	{Code: "JUNTASP", Name: "JuntasP", PricePerUnit: 0.75, StockNeeded: 0.25},
	{Code: "JCOM", Name: "JointCom", PricePerUnit: 1.00, StockNeeded: 0.00},
	{Code: "PWP", Name: "PladurWP", PricePerUnit: 1.70, StockNeeded: 0.00},
	{Code: "PN", Name: "pladurN", PricePerUnit: 1.40, StockNeeded: 0.00},
	{Code: "STEELP", Name: "SteelP", PricePerUnit: 1.00, StockNeeded: 0.00},
	{Code: "AMOHO", Name: "Anti-moho", PricePerUnit: 2.66, StockNeeded: 0.00},
	{Code: "SUPP", Name: "Supplies", PricePerUnit: 50.00, StockNeeded: 0.00},
	{Code: "BOLSAS", Name: "Bolsas", PricePerUnit: 0.30, StockNeeded: 0.00},
	{Code: "BASURA", Name: "basura", PricePerUnit: 90.00, StockNeeded: 0.00},
	{Code: "DAYS", Name: "Days", PricePerUnit: 200.00, StockNeeded: 0.00},
}

// DefaultProducts returns a fresh copy of the seed catalog.
func DefaultProducts() []models.Product {
	out := make([]models.Product, len(defaultProducts))
	copy(out, defaultProducts)
	return out
}

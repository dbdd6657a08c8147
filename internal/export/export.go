package export

import (
	"github.com/shopspring/decimal"

	"github.com/RobertoSaucedoL/ELCHAL/internal/catalog"
	"github.com/RobertoSaucedoL/ELCHAL/internal/combo"
	"github.com/RobertoSaucedoL/ELCHAL/internal/costmodel"
	"github.com/RobertoSaucedoL/ELCHAL/internal/pricing"
)

// ItemRow is one exported combo line: unit figures plus subtotals.
type ItemRow struct {
	ProductID     string  `json:"product_id"`
	Product       string  `json:"producto"`
	Qty           float64 `json:"cantidad"`
	UnitPrice     float64 `json:"precio"`
	UnitCost      float64 `json:"costo"`
	SubtotalPrice float64 `json:"subtotal_precio"`
	SubtotalCost  float64 `json:"subtotal_costo"`
}

// Document is the downloadable combo file. Monetary values are rounded
// to 2 decimals here and only here; every upstream computation keeps
// full precision.
type Document struct {
	Combo      string `json:"combo"`
	PriceBasis string `json:"base_precio"` // which strategy produced the price

	Items []ItemRow `json:"items"`

	SumListPrices float64 `json:"suma_precios_lista"`
	SumCosts      float64 `json:"suma_costos"`

	ComboPrice     float64 `json:"precio_combo"`
	CommissionCost float64 `json:"costo_app"`
	Packaging      float64 `json:"costo_empaque"`
	OtherVar       float64 `json:"otros_costos"`
	TotalCost      float64 `json:"costo_total_combo"`
	MarginAbs      float64 `json:"margen_abs"`
	MarginPct      float64 `json:"margen_pct"`
	DiscountPct    float64 `json:"descuento_vs_lista_pct"`

	Strategy struct {
		Mode            string  `json:"modo"`
		DiscountPct     float64 `json:"descuento_pct"`
		TargetMarginPct float64 `json:"margen_objetivo_pct"`
		EnforceFloor    bool    `json:"piso_precios_minimos"`
		CommissionPct   float64 `json:"comision_pct"`
	} `json:"estrategia"`

	PrepTimeMin int `json:"prep_time_min"`
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Build assembles the export document from the working combo and its
// freshly evaluated metrics.
func Build(
	cat *catalog.Catalog,
	costs *costmodel.Table,
	c combo.Candidate,
	m combo.Metrics,
	params combo.Params,
	strategy pricing.Strategy,
	prepTimeMin int,
) Document {

	doc := Document{
		Combo:         c.Name,
		PriceBasis:    string(strategy.Mode),
		SumListPrices: round2(m.SumBase),
		SumCosts:      round2(m.SumCost),

		ComboPrice:     round2(c.Price),
		CommissionCost: round2(m.CommissionCost),
		Packaging:      round2(params.Packaging),
		OtherVar:       round2(params.OtherVar),
		TotalCost:      round2(m.TotalCost),
		MarginAbs:      round2(m.MarginAbs),
		MarginPct:      round2(m.MarginPct),
		DiscountPct:    round2(m.DiscountVsListPct),

		PrepTimeMin: prepTimeMin,
	}

	doc.Strategy.Mode = string(strategy.Mode)
	doc.Strategy.DiscountPct = strategy.DiscountPct
	doc.Strategy.TargetMarginPct = strategy.TargetMarginPct
	doc.Strategy.EnforceFloor = strategy.EnforceFloor
	doc.Strategy.CommissionPct = params.CommissionPct

	for _, item := range c.Items {
		p, ok := cat.Get(item.ProductID)
		if !ok || p.BasePrice == nil {
			continue
		}
		unitPrice := *p.BasePrice
		unitCost := costs.UnitCost(unitPrice, p.Category)
		doc.Items = append(doc.Items, ItemRow{
			ProductID:     p.ID,
			Product:       p.Label(),
			Qty:           item.Qty,
			UnitPrice:     round2(unitPrice),
			UnitCost:      round2(unitCost),
			SubtotalPrice: round2(unitPrice * item.Qty),
			SubtotalCost:  round2(unitCost * item.Qty),
		})
	}

	return doc
}

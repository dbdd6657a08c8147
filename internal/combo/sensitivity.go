package combo

import (
	"github.com/RobertoSaucedoL/ELCHAL/internal/catalog"
	"github.com/RobertoSaucedoL/ELCHAL/internal/costmodel"
)

// PricePoint is one row of the price sweep.
type PricePoint struct {
	DeltaPct  float64 `json:"delta_pct"`
	Price     float64 `json:"price"`
	MarginPct float64 `json:"margin_pct"`
}

// CommissionPoint is one row of the commission sweep.
type CommissionPoint struct {
	CommissionPct float64 `json:"commission_pct"`
	MarginPct     float64 `json:"margin_pct"`
}

// Sensitivity holds the two quick what-if sweeps shown next to the
// combo metrics: price ±10% and delivery commission 0-30%.
type Sensitivity struct {
	Price      []PricePoint      `json:"price"`
	Commission []CommissionPoint `json:"commission"`
}

// Sensitivities reruns the evaluator across the standard sweeps. The
// combo price sweep keeps the session commission; the commission sweep
// keeps the combo price.
func Sensitivities(cat *catalog.Catalog, costs *costmodel.Table, items []LineItem, price float64, params Params) Sensitivity {
	var s Sensitivity

	for _, delta := range []float64{-10, -5, 0, 5, 10} {
		p := price * (1 + delta/100)
		m := Evaluate(cat, costs, items, p, params)
		s.Price = append(s.Price, PricePoint{
			DeltaPct:  delta,
			Price:     p,
			MarginPct: m.MarginPct,
		})
	}

	for com := 0.0; com <= 30; com += 5 {
		swept := params
		swept.CommissionPct = com
		m := Evaluate(cat, costs, items, price, swept)
		s.Commission = append(s.Commission, CommissionPoint{
			CommissionPct: com,
			MarginPct:     m.MarginPct,
		})
	}

	return s
}

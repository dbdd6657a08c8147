package combo

import (
	"github.com/RobertoSaucedoL/ELCHAL/internal/catalog"
	"github.com/RobertoSaucedoL/ELCHAL/internal/costmodel"
)

// Totals aggregates the line items against the catalog: sum of base
// prices, sum of estimated costs, and the quantity-weighted sum of
// minimum prices (the floor).
//
// Items whose product is missing from the catalog, or whose base price
// is nil, contribute zero to every sum. Stale references are expected
// after a catalog reload and must not fail the evaluation.
func Totals(cat *catalog.Catalog, costs *costmodel.Table, items []LineItem) (sumBase, sumCost, sumFloor float64) {
	for _, item := range items {
		p, ok := cat.Get(item.ProductID)
		if !ok || p.BasePrice == nil {
			continue
		}
		sumBase += *p.BasePrice * item.Qty
		sumCost += costs.UnitCost(*p.BasePrice, p.Category) * item.Qty
		if p.MinPrice != nil {
			sumFloor += *p.MinPrice * item.Qty
		}
	}
	return sumBase, sumCost, sumFloor
}

// Evaluate computes combo metrics for a trial price. Pure function:
// identical inputs give identical outputs, and there is no error path —
// the zero divisions are defined to zero by convention.
func Evaluate(cat *catalog.Catalog, costs *costmodel.Table, items []LineItem, trialPrice float64, params Params) Metrics {
	sumBase, sumCost, _ := Totals(cat, costs, items)

	commissionCost := trialPrice * params.CommissionPct / 100
	totalCost := sumCost + params.Packaging + params.OtherVar + commissionCost
	marginAbs := trialPrice - totalCost

	marginPct := 0.0
	if trialPrice > 0 {
		marginPct = marginAbs / trialPrice * 100
	}

	discountVsList := 0.0
	if sumBase > 0 {
		discountVsList = (1 - trialPrice/sumBase) * 100
	}

	return Metrics{
		SumBase:           sumBase,
		SumCost:           sumCost,
		CommissionCost:    commissionCost,
		TotalCost:         totalCost,
		MarginAbs:         marginAbs,
		MarginPct:         marginPct,
		DiscountVsListPct: discountVsList,
	}
}

package combo

// LineItem references a catalog product by id with a quantity.
// Quantities of at least 1; decimals allowed (e.g. 1.5 orders of wings).
type LineItem struct {
	ProductID string  `json:"product_id"`
	Qty       float64 `json:"qty"`
}

// Candidate is a proposed combo: line items plus a trial price and
// descriptive fields. The working combo under edit is also a Candidate.
type Candidate struct {
	ID    string     `json:"id,omitempty"`
	Name  string     `json:"name"`
	Items []LineItem `json:"items"`
	Price float64    `json:"price"`
	Copy  string     `json:"copy,omitempty"`
	Why   string     `json:"why,omitempty"`
}

// Params are the session's variable-cost knobs.
type Params struct {
	CommissionPct float64 `json:"commission_pct"` // delivery app commission, 0-35
	Packaging     float64 `json:"packaging"`      // fixed per combo
	OtherVar      float64 `json:"other_var"`      // other variable costs per combo
}

// Metrics are derived from a Candidate plus cost parameters, never
// persisted on their own, and recomputed on every parameter change.
type Metrics struct {
	SumBase           float64 `json:"sum_base"`
	SumCost           float64 `json:"sum_cost"`
	CommissionCost    float64 `json:"commission_cost"`
	TotalCost         float64 `json:"total_cost"`
	MarginAbs         float64 `json:"margin_abs"`
	MarginPct         float64 `json:"margin_pct"`
	DiscountVsListPct float64 `json:"discount_vs_list_pct"`
}

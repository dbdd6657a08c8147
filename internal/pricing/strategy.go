package pricing

// Mode selects how the combo price is derived.
type Mode string

const (
	DiscountOffList Mode = "DISCOUNT_OFF_LIST"
	TargetMargin    Mode = "TARGET_MARGIN"
)

// epsilon guards the target-margin division as the target approaches 100%.
const epsilon = 1e-6

// Strategy holds the operator's pricing choice and its knobs.
type Strategy struct {
	Mode            Mode    `json:"mode"`
	DiscountPct     float64 `json:"discount_pct"`      // 0-60
	TargetMarginPct float64 `json:"target_margin_pct"` // 10-80
	EnforceFloor    bool    `json:"enforce_floor"`
}

// Price derives the combo price from the aggregate sums. The minimum
// price floor, when enforced, is a correction applied after the strategy
// formula, never an input to it.
//
// Note the target-margin mode prices from cost alone; commission and
// packaging land on top afterwards, so the realized margin sits below
// the nominal target whenever those are positive. That is the intended
// behavior of the formula, matching how the simulator has always priced.
func (s Strategy) Price(sumBase, sumCost, sumFloor float64) float64 {
	var price float64

	switch s.Mode {
	case TargetMargin:
		denom := 1 - s.TargetMarginPct/100
		if denom < epsilon {
			denom = epsilon
		}
		price = sumCost / denom
	default:
		price = sumBase * (1 - s.DiscountPct/100)
	}

	if s.EnforceFloor && price < sumFloor {
		price = sumFloor
	}
	return price
}

// Validate clamps out-of-range knobs into their operator slider ranges.
func (s *Strategy) Validate() {
	if s.Mode != TargetMargin {
		s.Mode = DiscountOffList
	}
	if s.DiscountPct < 0 {
		s.DiscountPct = 0
	}
	if s.DiscountPct > 60 {
		s.DiscountPct = 60
	}
	if s.TargetMarginPct < 10 {
		s.TargetMarginPct = 10
	}
	if s.TargetMarginPct > 80 {
		s.TargetMarginPct = 80
	}
}

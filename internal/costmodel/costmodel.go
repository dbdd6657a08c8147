package costmodel

import "sync"

// Food-cost fraction bounds. Category fractions set by the operator are
// clamped into this range; 0.33 applies to any category not in the table.
const (
	MinFraction     = 0.10
	MaxFraction     = 0.60
	DefaultFraction = 0.33
)

// Table maps a category to its estimated food-cost fraction.
// Constant during a session except for explicit operator adjustment.
// Guarded by its own lock: the table is read by suggestion and export
// requests while another request to the same session may be adjusting it.
type Table struct {
	mu        sync.RWMutex
	fractions map[string]float64
}

func NewTable() *Table {
	return &Table{fractions: make(map[string]float64)}
}

// Set stores the fraction for an exact category string, clamped to
// [MinFraction, MaxFraction].
func (t *Table) Set(category string, fraction float64) {
	if fraction < MinFraction {
		fraction = MinFraction
	}
	if fraction > MaxFraction {
		fraction = MaxFraction
	}
	t.mu.Lock()
	t.fractions[category] = fraction
	t.mu.Unlock()
}

// FractionFor returns the fraction for an exact category match, else
// DefaultFraction.
func (t *Table) FractionFor(category string) float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if f, ok := t.fractions[category]; ok {
		return f
	}
	return DefaultFraction
}

// UnitCost estimates a unit cost from a unit price. No rounding here;
// rounding is deferred to export.
func (t *Table) UnitCost(unitPrice float64, category string) float64 {
	return unitPrice * t.FractionFor(category)
}

// Fractions returns a copy of the operator-set overrides.
func (t *Table) Fractions() map[string]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]float64, len(t.fractions))
	for k, v := range t.fractions {
		out[k] = v
	}
	return out
}

package session

import (
	"errors"
	"sync"
	"time"

	"github.com/RobertoSaucedoL/ELCHAL/internal/catalog"
	"github.com/RobertoSaucedoL/ELCHAL/internal/combo"
	"github.com/RobertoSaucedoL/ELCHAL/internal/costmodel"
	"github.com/RobertoSaucedoL/ELCHAL/internal/pricing"
)

// Session is one operator's isolated workspace: catalog, cost model,
// cost parameters, pricing strategy, and the working combo under edit.
// Nothing here is shared across sessions.
//
// The working combo is the state machine: nil means Empty, non-nil means
// Populated. Empty is never re-entered once populated; applying a
// candidate replaces the combo wholesale, manual edits mutate it.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	mu          sync.Mutex
	catalog     *catalog.Catalog
	costs       *costmodel.Table
	params      combo.Params
	strategy    pricing.Strategy
	working     *combo.Candidate
	prepTimeMin int
}

func newSession(id string) *Session {
	return &Session{
		ID:        id,
		CreatedAt: time.Now(),
		catalog:   catalog.NewCatalog(),
		costs:     costmodel.NewTable(),
		strategy: pricing.Strategy{
			Mode:            pricing.DiscountOffList,
			DiscountPct:     20,
			TargetMarginPct: 55,
		},
	}
}

// SetCatalog installs a freshly normalized catalog. The working combo is
// kept: stale line items simply contribute zero until removed.
func (s *Session) SetCatalog(c *catalog.Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = c
	s.repriceLocked()
}

func (s *Session) Catalog() *catalog.Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog
}

func (s *Session) Costs() *costmodel.Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.costs
}

// SetCostFractions applies operator overrides to the cost model.
func (s *Session) SetCostFractions(fractions map[string]float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for cat, f := range fractions {
		s.costs.Set(cat, f)
	}
	s.repriceLocked()
}

func (s *Session) Params() combo.Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

func (s *Session) SetParams(p combo.Params) {
	if p.CommissionPct < 0 {
		p.CommissionPct = 0
	}
	if p.CommissionPct > 35 {
		p.CommissionPct = 35
	}
	if p.Packaging < 0 {
		p.Packaging = 0
	}
	if p.OtherVar < 0 {
		p.OtherVar = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params = p
}

func (s *Session) Strategy() pricing.Strategy {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.strategy
}

func (s *Session) SetStrategy(st pricing.Strategy) {
	st.Validate()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strategy = st
	s.repriceLocked()
}

// Apply replaces the working combo wholesale with a chosen candidate,
// then reprices it under the session strategy.
func (s *Session) Apply(c combo.Candidate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	applied := c
	s.working = &applied
	s.repriceLocked()
}

// UpsertItem adds a manual line item, or replaces the quantity when the
// product is already in the combo. Quantities below 1 are rejected.
func (s *Session) UpsertItem(item combo.LineItem) error {
	if item.Qty < 1 {
		return errors.New("quantity must be at least 1")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.catalog.Get(item.ProductID); !ok {
		return errors.New("product not in catalog")
	}
	if s.working == nil {
		s.working = &combo.Candidate{Name: "Combo El Chal"}
	}
	replaced := false
	for i := range s.working.Items {
		if s.working.Items[i].ProductID == item.ProductID {
			s.working.Items[i].Qty = item.Qty
			replaced = true
			break
		}
	}
	if !replaced {
		s.working.Items = append(s.working.Items, item)
	}
	s.repriceLocked()
	return nil
}

// RemoveItem drops a product from the working combo. Removing the last
// item leaves a Populated-but-empty combo; Empty is never re-entered.
func (s *Session) RemoveItem(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.working == nil {
		return errors.New("no working combo")
	}
	items := s.working.Items[:0]
	found := false
	for _, it := range s.working.Items {
		if it.ProductID == productID {
			found = true
			continue
		}
		items = append(items, it)
	}
	if !found {
		return errors.New("product not in combo")
	}
	s.working.Items = items
	s.repriceLocked()
	return nil
}

// Rename sets the combo name and target prep time used at export.
func (s *Session) Rename(name string, prepTimeMin int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.working == nil {
		return errors.New("no working combo")
	}
	if name != "" {
		s.working.Name = name
	}
	if prepTimeMin >= 0 {
		s.prepTimeMin = prepTimeMin
	}
	return nil
}

// repriceLocked recomputes the working combo price under the session
// strategy. Caller holds s.mu.
func (s *Session) repriceLocked() {
	if s.working == nil {
		return
	}
	sumBase, sumCost, sumFloor := combo.Totals(s.catalog, s.costs, s.working.Items)
	s.working.Price = s.strategy.Price(sumBase, sumCost, sumFloor)
}

// View is a consistent snapshot of the working combo with its metrics
// and sensitivity sweeps, recomputed on every call.
type View struct {
	State       string             `json:"state"` // EMPTY | POPULATED
	Combo       *combo.Candidate   `json:"combo,omitempty"`
	Metrics     *combo.Metrics     `json:"metrics,omitempty"`
	Sensitivity *combo.Sensitivity `json:"sensitivity,omitempty"`
	Strategy    pricing.Strategy   `json:"strategy"`
	Params      combo.Params       `json:"params"`
	PrepTimeMin int                `json:"prep_time_min"`
}

func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		State:       "EMPTY",
		Strategy:    s.strategy,
		Params:      s.params,
		PrepTimeMin: s.prepTimeMin,
	}
	if s.working == nil {
		return v
	}

	c := *s.working
	c.Items = append([]combo.LineItem(nil), s.working.Items...)
	m := combo.Evaluate(s.catalog, s.costs, c.Items, c.Price, s.params)
	sens := combo.Sensitivities(s.catalog, s.costs, c.Items, c.Price, s.params)

	v.State = "POPULATED"
	v.Combo = &c
	v.Metrics = &m
	v.Sensitivity = &sens
	return v
}

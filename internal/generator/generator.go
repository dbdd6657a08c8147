package generator

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/RobertoSaucedoL/ELCHAL/internal/catalog"
	"github.com/RobertoSaucedoL/ELCHAL/internal/combo"
	"github.com/RobertoSaucedoL/ELCHAL/internal/costmodel"
)

// Randomized pricing bands. Each candidate is priced by BOTH rules and
// takes the larger result, so the generator never proposes below what
// either rule alone would require.
const (
	marginLow    = 0.50
	marginHigh   = 0.60
	discountLow  = 0.15
	discountHigh = 0.30
)

// Options bound a generation run.
type Options struct {
	NumCombos    int
	MinItems     int
	MaxItems     int
	EnforceFloor bool
}

func (o *Options) normalize() {
	if o.NumCombos < 1 {
		o.NumCombos = 3
	}
	if o.MinItems < 1 {
		o.MinItems = 2
	}
	if o.MaxItems < o.MinItems {
		o.MaxItems = o.MinItems
	}
}

// Generator assembles fallback combo candidates when the AI collaborator
// is unavailable. All randomness flows through the injected source, so a
// fixed seed reproduces a run exactly.
type Generator struct {
	rng *rand.Rand
}

func New(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rng: rng}
}

// Generate produces up to opts.NumCombos candidates. Degenerate draws
// (no priced items, zero cost) are skipped, never errored: an empty
// result is a valid outcome on a thin catalog.
func (g *Generator) Generate(cat *catalog.Catalog, costs *costmodel.Table, opts Options) []combo.Candidate {
	opts.normalize()

	products := cat.Products()
	if len(products) == 0 {
		return nil
	}

	principals := filter(products, func(p catalog.Product) bool { return isPrincipal(p.Category) })
	breakfastPool := filter(products, func(p catalog.Product) bool { return isBreakfast(p.Category) })
	hotDrinks := filter(products, func(p catalog.Product) bool { return isHotDrink(p.Category) })
	coldDrinks := filter(products, func(p catalog.Product) bool { return isColdDrink(p.Category) })
	snacks := filter(products, func(p catalog.Product) bool { return isSnack(p.Category) })
	desserts := filter(products, func(p catalog.Product) bool { return isDessert(p.Category) })

	var out []combo.Candidate
	for i := 0; i < opts.NumCombos; i++ {
		if c, ok := g.buildOne(cat, costs, opts, principals, breakfastPool, hotDrinks, coldDrinks, snacks, desserts); ok {
			out = append(out, c)
		}
	}
	return out
}

func (g *Generator) buildOne(
	cat *catalog.Catalog,
	costs *costmodel.Table,
	opts Options,
	principals, breakfastPool, hotDrinks, coldDrinks, snacks, desserts []catalog.Product,
) (combo.Candidate, bool) {

	// 1. Principal: main-dish pool, then breakfast, then whole catalog.
	pool := principals
	breakfastMain := false
	if len(pool) == 0 {
		pool = breakfastPool
		breakfastMain = len(pool) > 0
	}
	if len(pool) == 0 {
		pool = cat.Products()
	}
	principal := pool[g.rng.Intn(len(pool))]

	used := map[string]bool{principal.ID: true}
	items := []combo.LineItem{{ProductID: principal.ID, Qty: 1}}

	// 2. Paired drink. Hard rule: cold with pizza/burger/hotdog/pasta,
	// hot with breakfast. Never the other way around.
	var drinkPool []catalog.Product
	switch {
	case isPrincipal(principal.Category):
		drinkPool = coldDrinks
	case breakfastMain || isBreakfast(principal.Category):
		drinkPool = hotDrinks
	default:
		drinkPool = coldDrinks
	}
	if len(drinkPool) > 0 && opts.MaxItems >= 2 {
		d := drinkPool[g.rng.Intn(len(drinkPool))]
		if !used[d.ID] {
			used[d.ID] = true
			items = append(items, combo.LineItem{ProductID: d.ID, Qty: 1})
		}
	}

	// 3. Fill remaining slots from snacks, desserts, and compatible
	// drinks only, so the pairing rule survives the fill step too.
	target := opts.MinItems + g.rng.Intn(opts.MaxItems-opts.MinItems+1)
	fillPool := append(append(append([]catalog.Product{}, snacks...), desserts...), drinkPool...)
	for len(items) < target && len(fillPool) > 0 {
		idx := g.rng.Intn(len(fillPool))
		p := fillPool[idx]
		fillPool = append(fillPool[:idx], fillPool[idx+1:]...)
		if used[p.ID] {
			continue
		}
		used[p.ID] = true
		items = append(items, combo.LineItem{ProductID: p.ID, Qty: 1})
	}

	sumBase, sumCost, sumFloor := combo.Totals(cat, costs, items)
	if sumBase <= 0 || sumCost <= 0 {
		return combo.Candidate{}, false
	}

	// 4. Price to a randomized margin/discount band; take the larger.
	margin := marginLow + g.rng.Float64()*(marginHigh-marginLow)
	discount := discountLow + g.rng.Float64()*(discountHigh-discountLow)

	price := sumCost / (1 - margin)
	if byDiscount := sumBase * (1 - discount); byDiscount > price {
		price = byDiscount
	}

	// 5. Same floor correction as manual pricing.
	if opts.EnforceFloor && price < sumFloor {
		price = sumFloor
	}

	labels := make([]string, 0, len(items))
	for _, it := range items {
		if p, ok := cat.Get(it.ProductID); ok {
			labels = append(labels, p.Label())
		}
	}

	return combo.Candidate{
		ID:    uuid.New().String(),
		Name:  "Combo " + principal.Name,
		Items: items,
		Price: price,
		Copy:  "Incluye: " + strings.Join(labels, " + "),
		Why: fmt.Sprintf(
			"Precio fijado al mayor entre margen objetivo %.0f%% y descuento %.0f%% vs lista",
			margin*100, discount*100,
		),
	}, true
}

func filter(products []catalog.Product, keep func(catalog.Product) bool) []catalog.Product {
	var out []catalog.Product
	for _, p := range products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

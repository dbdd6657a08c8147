package catalog

// Product is the canonical, normalized menu product.
// Built once per catalog load and immutable afterward.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory,omitempty"`
	Brand       string `json:"brand,omitempty"`
	Size        string `json:"size,omitempty"`

	// BasePrice is nil when the source cell was missing or unparseable.
	// Such products never make it into the catalog (rows are dropped),
	// but line items may still reference stale ids safely.
	BasePrice *float64 `json:"base_price"`
	MinPrice  *float64 `json:"min_price,omitempty"`

	// Up to four alternate price tiers (smaller/larger presentations).
	AltPrices []*float64 `json:"alt_prices,omitempty"`
}

// Label renders the operator-facing display name: "Name [Size]"
// when a size is present, bare name otherwise.
func (p Product) Label() string {
	if p.Size != "" {
		return p.Name + " [" + p.Size + "]"
	}
	return p.Name
}

// Catalog maps product id -> Product, preserving source row order.
type Catalog struct {
	byID  map[string]Product
	order []string
}

func NewCatalog() *Catalog {
	return &Catalog{byID: make(map[string]Product)}
}

func (c *Catalog) add(p Product) {
	if _, exists := c.byID[p.ID]; !exists {
		c.order = append(c.order, p.ID)
	}
	c.byID[p.ID] = p
}

// Get returns the product and whether it exists.
func (c *Catalog) Get(id string) (Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.order)
}

// Products returns products in source row order.
func (c *Catalog) Products() []Product {
	out := make([]Product, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Categories returns the distinct categories in first-seen order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, id := range c.order {
		cat := c.byID[id].Category
		if cat == "" || seen[cat] {
			continue
		}
		seen[cat] = true
		out = append(out, cat)
	}
	return out
}

// Subcategories returns the distinct subcategories in first-seen order.
// Empty when the source sheet carried no subcategory column.
func (c *Catalog) Subcategories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, id := range c.order {
		sub := c.byID[id].Subcategory
		if sub == "" || seen[sub] {
			continue
		}
		seen[sub] = true
		out = append(out, sub)
	}
	return out
}

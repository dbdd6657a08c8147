package generator

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/RobertoSaucedoL/ELCHAL/internal/catalog"
	"github.com/RobertoSaucedoL/ELCHAL/internal/combo"
	"github.com/RobertoSaucedoL/ELCHAL/internal/costmodel"
)

func testMenu(t *testing.T) (*catalog.Catalog, *costmodel.Table) {
	t.Helper()
	header := []string{"SKU", "Nombre del Producto", "Categoría", "Precio (MXN)", "Precio Mínimo"}
	rows := [][]string{
		{"PZ1", "Pizza Pastor", "Pizzas Personales", "150", "149"},
		{"PZ2", "Pizza Hawaiana", "Pizzas Personales", "155", "150"},
		{"HB1", "Hamburguesa Clásica", "Hamburguesas", "120", ""},
		{"DE1", "Chilaquiles", "Desayunos", "95", ""},
		{"BF1", "Refresco Cola", "Bebidas Frías", "35", "45"},
		{"BF2", "Limonada", "Bebidas Frías", "30", ""},
		{"BC1", "Café Americano", "Bebidas Calientes", "40", ""},
		{"BC2", "Capuchino", "Bebidas Calientes", "55", ""},
		{"SN1", "Papas a la Francesa", "Snacks", "45", ""},
		{"PO1", "Pay de Queso", "Postres", "60", ""},
	}
	cat, err := catalog.Normalize(header, rows)
	if err != nil {
		t.Fatal(err)
	}
	costs := costmodel.NewTable()
	costs.Set("Pizzas Personales", 0.32)
	costs.Set("Bebidas Frías", 0.28)
	return cat, costs
}

func hotDrinkIDs() map[string]bool {
	return map[string]bool{"BC1": true, "BC2": true}
}

func TestGenerateIsDeterministicPerSeed(t *testing.T) {
	cat, costs := testMenu(t)
	opts := Options{NumCombos: 5, MinItems: 2, MaxItems: 4}

	a := New(rand.New(rand.NewSource(7))).Generate(cat, costs, opts)
	b := New(rand.New(rand.NewSource(7))).Generate(cat, costs, opts)

	if len(a) != len(b) {
		t.Fatalf("runs differ in length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if !reflect.DeepEqual(a[i].Items, b[i].Items) {
			t.Fatalf("combo %d items differ between identically seeded runs", i)
		}
		if a[i].Price != b[i].Price {
			t.Fatalf("combo %d price differs between identically seeded runs", i)
		}
	}
}

// The pairing rule is a hard constraint: a main-dish principal never
// comes with a hot drink, no matter how many combos we draw.
func TestNoHotDrinkWithMainDishPrincipal(t *testing.T) {
	cat, costs := testMenu(t)
	gen := New(rand.New(rand.NewSource(42)))

	combos := gen.Generate(cat, costs, Options{NumCombos: 1000, MinItems: 2, MaxItems: 5})
	if len(combos) == 0 {
		t.Fatal("expected candidates")
	}

	hot := hotDrinkIDs()
	for _, c := range combos {
		for _, item := range c.Items {
			if hot[item.ProductID] {
				t.Fatalf("combo %q contains hot drink %s alongside a main-dish principal", c.Name, item.ProductID)
			}
		}
	}
}

func TestBreakfastPrincipalGetsHotDrink(t *testing.T) {
	// breakfast-only menu: no pizza/burger pool, so principals fall back
	// to Desayunos, which pair with hot drinks
	header := []string{"SKU", "Nombre del Producto", "Categoría", "Precio (MXN)"}
	rows := [][]string{
		{"DE1", "Chilaquiles", "Desayunos", "95"},
		{"DE2", "Molletes", "Desayunos", "80"},
		{"BC1", "Café Americano", "Bebidas Calientes", "40"},
		{"BF1", "Refresco Cola", "Bebidas Frías", "35"},
	}
	cat, err := catalog.Normalize(header, rows)
	if err != nil {
		t.Fatal(err)
	}
	costs := costmodel.NewTable()

	gen := New(rand.New(rand.NewSource(3)))
	combos := gen.Generate(cat, costs, Options{NumCombos: 200, MinItems: 2, MaxItems: 2})

	for _, c := range combos {
		for _, item := range c.Items {
			if item.ProductID == "BF1" {
				t.Fatalf("combo %q pairs a cold drink with a breakfast principal", c.Name)
			}
		}
	}
}

func TestPriceNeverBelowEitherRuleMinimum(t *testing.T) {
	cat, costs := testMenu(t)
	gen := New(rand.New(rand.NewSource(11)))

	combos := gen.Generate(cat, costs, Options{NumCombos: 500, MinItems: 2, MaxItems: 4})
	for _, c := range combos {
		sumBase, sumCost, _ := combo.Totals(cat, costs, c.Items)

		// margin band floor: cost / (1 - 0.50)
		if c.Price < sumCost/(1-marginLow)-1e-9 {
			t.Fatalf("price %v under the margin-band minimum for cost %v", c.Price, sumCost)
		}
		// discount band floor: base * (1 - 0.30)
		if c.Price < sumBase*(1-discountHigh)-1e-9 {
			t.Fatalf("price %v under the discount-band minimum for base %v", c.Price, sumBase)
		}
	}
}

func TestItemCountStaysInBounds(t *testing.T) {
	cat, costs := testMenu(t)
	gen := New(rand.New(rand.NewSource(23)))

	combos := gen.Generate(cat, costs, Options{NumCombos: 200, MinItems: 2, MaxItems: 4})
	for _, c := range combos {
		if len(c.Items) < 2 || len(c.Items) > 4 {
			t.Fatalf("combo %q has %d items, want 2..4", c.Name, len(c.Items))
		}
	}
}

func TestFloorEnforcement(t *testing.T) {
	cat, costs := testMenu(t)
	gen := New(rand.New(rand.NewSource(5)))

	combos := gen.Generate(cat, costs, Options{NumCombos: 300, MinItems: 2, MaxItems: 3, EnforceFloor: true})
	for _, c := range combos {
		_, _, sumFloor := combo.Totals(cat, costs, c.Items)
		if c.Price < sumFloor-1e-9 {
			t.Fatalf("price %v under the minimum-price floor %v", c.Price, sumFloor)
		}
	}
}

func TestEmptyCatalogProducesNothing(t *testing.T) {
	gen := New(rand.New(rand.NewSource(1)))
	combos := gen.Generate(catalog.NewCatalog(), costmodel.NewTable(), Options{NumCombos: 10})
	if combos != nil {
		t.Fatalf("expected no candidates, got %d", len(combos))
	}
}

func TestCandidatePricesArePositive(t *testing.T) {
	cat, costs := testMenu(t)
	gen := New(rand.New(rand.NewSource(99)))

	for _, c := range gen.Generate(cat, costs, Options{NumCombos: 100, MinItems: 2, MaxItems: 3}) {
		if c.Price <= 0 || math.IsNaN(c.Price) {
			t.Fatalf("combo %q has bad price %v", c.Name, c.Price)
		}
	}
}

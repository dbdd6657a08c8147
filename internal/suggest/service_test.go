package suggest

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/RobertoSaucedoL/ELCHAL/internal/catalog"
	"github.com/RobertoSaucedoL/ELCHAL/internal/combo"
	"github.com/RobertoSaucedoL/ELCHAL/internal/costmodel"
	"github.com/RobertoSaucedoL/ELCHAL/internal/generator"
	"github.com/RobertoSaucedoL/ELCHAL/internal/llm"
)

// fakeClient scripts the collaborator's behavior for tests.
type fakeClient struct {
	response string
	err      error
	delay    time.Duration
}

func (f *fakeClient) SuggestCombos(ctx context.Context, prompt string) (string, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func testMenu(t *testing.T) (*catalog.Catalog, *costmodel.Table) {
	t.Helper()
	header := []string{"SKU", "Nombre del Producto", "Categoría", "Precio (MXN)"}
	rows := [][]string{
		{"PZ1", "Pizza Pastor", "Pizzas Personales", "150"},
		{"BF1", "Refresco Cola", "Bebidas Frías", "35"},
		{"SN1", "Papas a la Francesa", "Snacks", "45"},
	}
	cat, err := catalog.Normalize(header, rows)
	if err != nil {
		t.Fatal(err)
	}
	return cat, costmodel.NewTable()
}

func newTestService(client llm.Client, timeout time.Duration) *Service {
	return NewService(client, generator.New(rand.New(rand.NewSource(1))), timeout)
}

func TestStructuredResponseIsUsed(t *testing.T) {
	cat, costs := testMenu(t)
	client := &fakeClient{
		response: `{"combos":[{"name":"Combo Pastor","items":[{"id":"PZ1","qty":1},{"id":"BF1","qty":1}],"price":165,"copy":"c","why":"w"}]}`,
	}
	svc := newTestService(client, time.Second)

	res := svc.Suggest(context.Background(), cat, costs, combo.Params{}, Request{NumCombos: 1})
	if res.AIUnavailable {
		t.Fatal("AI was available; fallback must not trigger")
	}
	if len(res.Candidates) != 1 || res.Candidates[0].Name != "Combo Pastor" {
		t.Fatalf("unexpected candidates %+v", res.Candidates)
	}
	if res.Candidates[0].ID == "" {
		t.Fatal("accepted candidates must get an id")
	}
}

func TestUnknownProductsAreDropped(t *testing.T) {
	cat, costs := testMenu(t)
	client := &fakeClient{
		response: `{"combos":[
			{"name":"Mixto","items":[{"id":"PZ1","qty":1},{"id":"NOPE","qty":3}],"price":150},
			{"name":"Fantasma","items":[{"id":"NOPE","qty":1}],"price":80}
		]}`,
	}
	svc := newTestService(client, time.Second)

	res := svc.Suggest(context.Background(), cat, costs, combo.Params{}, Request{})
	if res.AIUnavailable {
		t.Fatal("one combo survives validation; no fallback expected")
	}
	if len(res.Candidates) != 1 {
		t.Fatalf("expected 1 surviving candidate, got %d", len(res.Candidates))
	}
	if len(res.Candidates[0].Items) != 1 || res.Candidates[0].Items[0].ProductID != "PZ1" {
		t.Fatalf("unknown ids must be dropped, got %+v", res.Candidates[0].Items)
	}
}

func TestErrorFallsBackToGenerator(t *testing.T) {
	cat, costs := testMenu(t)
	svc := newTestService(&fakeClient{err: errors.New("api down")}, time.Second)

	res := svc.Suggest(context.Background(), cat, costs, combo.Params{}, Request{NumCombos: 3})
	if !res.AIUnavailable {
		t.Fatal("fallback flag must be set")
	}
	if len(res.Candidates) == 0 {
		t.Fatal("generator should still produce candidates")
	}
}

func TestGarbageResponseFallsBack(t *testing.T) {
	cat, costs := testMenu(t)
	svc := newTestService(&fakeClient{response: "no structured data here"}, time.Second)

	res := svc.Suggest(context.Background(), cat, costs, combo.Params{}, Request{NumCombos: 2})
	if !res.AIUnavailable {
		t.Fatal("unusable output must trigger fallback")
	}
}

func TestTimeoutFallsBack(t *testing.T) {
	cat, costs := testMenu(t)
	svc := newTestService(&fakeClient{response: "{}", delay: 500 * time.Millisecond}, 20*time.Millisecond)

	start := time.Now()
	res := svc.Suggest(context.Background(), cat, costs, combo.Params{}, Request{})
	if !res.AIUnavailable {
		t.Fatal("timeout must trigger fallback")
	}
	if time.Since(start) > 400*time.Millisecond {
		t.Fatal("suggest did not honor its deadline")
	}
}

func TestNilClientUsesGeneratorDirectly(t *testing.T) {
	cat, costs := testMenu(t)
	svc := newTestService(nil, time.Second)

	res := svc.Suggest(context.Background(), cat, costs, combo.Params{}, Request{NumCombos: 2})
	if !res.AIUnavailable {
		t.Fatal("no client means AI is unavailable")
	}
	if len(res.Candidates) == 0 {
		t.Fatal("generator should produce candidates")
	}
}

func TestFloorEnforcedOnAICombos(t *testing.T) {
	header := []string{"SKU", "Nombre del Producto", "Categoría", "Precio (MXN)", "Precio Mínimo"}
	rows := [][]string{{"PZ1", "Pizza Pastor", "Pizzas Personales", "150", "149"}}
	cat, err := catalog.Normalize(header, rows)
	if err != nil {
		t.Fatal(err)
	}
	costs := costmodel.NewTable()

	client := &fakeClient{
		response: `{"combos":[{"name":"Barato","items":[{"id":"PZ1","qty":1}],"price":50}]}`,
	}
	svc := newTestService(client, time.Second)

	res := svc.Suggest(context.Background(), cat, costs, combo.Params{}, Request{EnforceFloor: true})
	if len(res.Candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(res.Candidates))
	}
	if res.Candidates[0].Price != 149 {
		t.Fatalf("price = %v, want floor 149", res.Candidates[0].Price)
	}
}

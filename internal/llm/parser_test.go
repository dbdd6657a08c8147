package llm

import "testing"

const cleanJSON = `{"combos":[{"name":"Combo Pastor","items":[{"id":"PZ1","qty":1},{"id":"BF1","qty":1}],"price":165,"copy":"Pizza + refresco","why":"margen sano"}]}`

func TestParseStructured(t *testing.T) {
	res := ParseComboResponse(cleanJSON)
	if res.Kind != Structured {
		t.Fatalf("expected Structured, got %v (%s)", res.Kind, res.Reason)
	}
	if len(res.Combos) != 1 {
		t.Fatalf("expected 1 combo, got %d", len(res.Combos))
	}
	c := res.Combos[0]
	if c.Name != "Combo Pastor" || c.Price != 165 || len(c.Items) != 2 {
		t.Fatalf("unexpected combo %+v", c)
	}
}

func TestParseJSONWrappedInProse(t *testing.T) {
	raw := "Sure! Here are my suggestions:\n```json\n" + cleanJSON + "\n```\nHope that helps."
	res := ParseComboResponse(raw)
	if res.Kind != Structured {
		t.Fatalf("expected Structured, got %v (%s)", res.Kind, res.Reason)
	}
	if res.Combos[0].Items[0].ID != "PZ1" {
		t.Fatalf("unexpected items %+v", res.Combos[0].Items)
	}
}

func TestParseBareArray(t *testing.T) {
	raw := `[{"name":"Combo","items":[{"id":"A","qty":2}],"price":99}]`
	res := ParseComboResponse(raw)
	if res.Kind != Structured {
		t.Fatalf("expected Structured, got %v (%s)", res.Kind, res.Reason)
	}
	if res.Combos[0].Items[0].Qty != 2 {
		t.Fatalf("unexpected qty %v", res.Combos[0].Items[0].Qty)
	}
}

func TestParseBracesInsideStrings(t *testing.T) {
	raw := `The model says: {"combos":[{"name":"Combo {especial}","items":[{"id":"A","qty":1}],"price":50}]} done`
	res := ParseComboResponse(raw)
	if res.Kind != Structured {
		t.Fatalf("expected Structured, got %v (%s)", res.Kind, res.Reason)
	}
	if res.Combos[0].Name != "Combo {especial}" {
		t.Fatalf("unexpected name %q", res.Combos[0].Name)
	}
}

func TestParsePlainTextIsUnstructured(t *testing.T) {
	res := ParseComboResponse("I would recommend pairing the pizza with a cold soda.")
	if res.Kind != Unstructured {
		t.Fatalf("expected Unstructured, got %v", res.Kind)
	}
}

func TestParseEmptyCombosIsUnstructured(t *testing.T) {
	// decodable JSON but nothing usable in it
	res := ParseComboResponse(`{"combos":[]}`)
	if res.Kind == Structured {
		t.Fatal("empty combo list must not count as Structured")
	}
}

func TestParseEmptyIsFailed(t *testing.T) {
	res := ParseComboResponse("   ")
	if res.Kind != Failed {
		t.Fatalf("expected Failed, got %v", res.Kind)
	}
}

func TestExtractBalancedUnterminated(t *testing.T) {
	if got := extractBalanced(`{"a": [1, 2`); got != "" {
		t.Fatalf("unterminated block should extract nothing, got %q", got)
	}
}

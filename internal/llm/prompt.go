package llm

import (
	"encoding/json"
	"fmt"

	"github.com/RobertoSaucedoL/ELCHAL/internal/catalog"
	"github.com/RobertoSaucedoL/ELCHAL/internal/combo"
)

// maxPromptProducts caps the catalog slice embedded in the prompt.
const maxPromptProducts = 40

type promptProduct struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

// BuildComboPrompt embeds a catalog slice, the cost parameters, and the
// item-count bounds into a strict-JSON instruction.
func BuildComboPrompt(cat *catalog.Catalog, params combo.Params, numCombos, minItems, maxItems int) string {
	products := cat.Products()
	if len(products) > maxPromptProducts {
		products = products[:maxPromptProducts]
	}

	slice := make([]promptProduct, 0, len(products))
	for _, p := range products {
		if p.BasePrice == nil {
			continue
		}
		slice = append(slice, promptProduct{
			ID:       p.ID,
			Name:     p.Name,
			Category: p.Category,
			Price:    *p.BasePrice,
		})
	}

	menuJSON, _ := json.Marshal(slice)

	return fmt.Sprintf(`
You are a restaurant pricing assistant.

Your task:
- Propose %d combos from the MENU below.
- Each combo has between %d and %d items.
- Output MUST be valid JSON.
- Output MUST start with { and end with }.
- Output MUST contain ONLY JSON.
- NO explanations.
- NO markdown.
- NO extra text.

If you cannot propose combos, return this exact JSON:
{
  "combos": []
}

Required JSON schema:
{
  "combos": [
    {
      "name": "string",
      "items": [{"id": "string", "qty": number}],
      "price": number,
      "copy": "string",
      "why": "string"
    }
  ]
}

Cost context:
- Delivery app commission: %.1f%% of the combo price.
- Packaging per combo: %.2f MXN.
- Other variable costs per combo: %.2f MXN.
Price each combo so it stays profitable after those costs.

MENU:
%s
`, numCombos, minItems, maxItems,
		params.CommissionPct, params.Packaging, params.OtherVar,
		string(menuJSON))
}

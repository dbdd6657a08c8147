package suggest

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/RobertoSaucedoL/ELCHAL/internal/catalog"
	"github.com/RobertoSaucedoL/ELCHAL/internal/combo"
	"github.com/RobertoSaucedoL/ELCHAL/internal/costmodel"
	"github.com/RobertoSaucedoL/ELCHAL/internal/generator"
	"github.com/RobertoSaucedoL/ELCHAL/internal/llm"
)

const defaultTimeout = 45 * time.Second

// Request bounds one suggestion run.
type Request struct {
	NumCombos    int  `json:"num_combos"`
	MinItems     int  `json:"min_items"`
	MaxItems     int  `json:"max_items"`
	EnforceFloor bool `json:"enforce_floor"`
}

// Result carries the candidates plus whether the heuristic fallback was
// used, so the handler can attach the advisory note.
type Result struct {
	Candidates    []combo.Candidate `json:"candidates"`
	AIUnavailable bool              `json:"ai_unavailable"`
}

// Service asks the generative collaborator for combos and falls back to
// the heuristic generator on timeout, errors, or unusable output. The
// operator never sees a hard error from this path.
type Service struct {
	client  llm.Client
	gen     *generator.Generator
	timeout time.Duration
}

// NewService builds the suggestion service. client may be nil when the
// collaborator is not configured; every run then uses the generator.
func NewService(client llm.Client, gen *generator.Generator, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Service{client: client, gen: gen, timeout: timeout}
}

func (s *Service) Suggest(
	ctx context.Context,
	cat *catalog.Catalog,
	costs *costmodel.Table,
	params combo.Params,
	req Request,
) Result {
	if req.NumCombos < 1 {
		req.NumCombos = 3
	}
	if req.MinItems < 1 {
		req.MinItems = 2
	}
	if req.MaxItems < req.MinItems {
		req.MaxItems = req.MinItems
	}

	if candidates, ok := s.fromAI(ctx, cat, costs, params, req); ok {
		return Result{Candidates: candidates}
	}

	return Result{
		Candidates: s.gen.Generate(cat, costs, generator.Options{
			NumCombos:    req.NumCombos,
			MinItems:     req.MinItems,
			MaxItems:     req.MaxItems,
			EnforceFloor: req.EnforceFloor,
		}),
		AIUnavailable: true,
	}
}

func (s *Service) fromAI(
	ctx context.Context,
	cat *catalog.Catalog,
	costs *costmodel.Table,
	params combo.Params,
	req Request,
) ([]combo.Candidate, bool) {
	if s.client == nil {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := llm.BuildComboPrompt(cat, params, req.NumCombos, req.MinItems, req.MaxItems)

	raw, err := s.client.SuggestCombos(ctx, prompt)
	if err != nil {
		log.Printf("[SUGGEST] AI call failed, using generator: %v", err)
		return nil, false
	}

	parsed := llm.ParseComboResponse(raw)
	if parsed.Kind != llm.Structured {
		log.Printf("[SUGGEST] AI output unusable (%s), using generator", parsed.Reason)
		return nil, false
	}

	candidates := s.validate(cat, costs, parsed.Combos, req)
	if len(candidates) == 0 {
		log.Println("[SUGGEST] AI combos did not survive validation, using generator")
		return nil, false
	}
	return candidates, true
}

// validate resolves descriptors against the catalog. Unknown product
// ids are dropped per item; combos left with no priced items, or with a
// non-positive price, are dropped whole.
func (s *Service) validate(
	cat *catalog.Catalog,
	costs *costmodel.Table,
	descriptors []llm.ComboDescriptor,
	req Request,
) []combo.Candidate {
	var out []combo.Candidate
	for _, d := range descriptors {
		var items []combo.LineItem
		for _, item := range d.Items {
			if _, ok := cat.Get(item.ID); !ok {
				continue
			}
			qty := item.Qty
			if qty < 1 {
				qty = 1
			}
			items = append(items, combo.LineItem{ProductID: item.ID, Qty: qty})
		}
		if len(items) == 0 || d.Price <= 0 {
			continue
		}

		sumBase, sumCost, sumFloor := combo.Totals(cat, costs, items)
		if sumBase <= 0 || sumCost <= 0 {
			continue
		}

		price := d.Price
		if req.EnforceFloor && price < sumFloor {
			price = sumFloor
		}

		name := d.Name
		if name == "" {
			name = "Combo sugerido"
		}

		out = append(out, combo.Candidate{
			ID:    uuid.New().String(),
			Name:  name,
			Items: items,
			Price: price,
			Copy:  d.Copy,
			Why:   d.Why,
		})
	}
	return out
}

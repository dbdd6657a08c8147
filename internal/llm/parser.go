package llm

import (
	"encoding/json"
	"strings"
)

// ComboDescriptor is one combo proposed by the model.
type ComboDescriptor struct {
	Name  string           `json:"name"`
	Items []DescriptorItem `json:"items"`
	Price float64          `json:"price"`
	Copy  string           `json:"copy"`
	Why   string           `json:"why"`
}

type DescriptorItem struct {
	ID  string  `json:"id"`
	Qty float64 `json:"qty"`
}

// ResultKind tags what the parser managed to extract.
type ResultKind int

const (
	// Structured: a usable combo list was decoded.
	Structured ResultKind = iota
	// Unstructured: the response held text but no decodable combo JSON.
	Unstructured
	// Failed: nothing usable at all.
	Failed
)

// ParseResult is the tagged outcome of parsing a model response.
// Callers treat anything but Structured as unusable and fall back.
type ParseResult struct {
	Kind   ResultKind
	Combos []ComboDescriptor
	Raw    string
	Reason string
}

type comboEnvelope struct {
	Combos []ComboDescriptor `json:"combos"`
}

// ParseComboResponse decodes a model response. The happy path is a bare
// JSON object with a "combos" list; failing that, the first balanced
// {...} or [...] block is extracted from the surrounding prose and
// decoded. Anything else is Unstructured or Failed.
func ParseComboResponse(raw string) ParseResult {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ParseResult{Kind: Failed, Reason: "empty response"}
	}

	if combos, ok := decodeCombos(raw); ok {
		return ParseResult{Kind: Structured, Combos: combos, Raw: raw}
	}

	block := extractBalanced(raw)
	if block == "" {
		return ParseResult{Kind: Unstructured, Raw: raw, Reason: "no JSON block found"}
	}
	if combos, ok := decodeCombos(block); ok {
		return ParseResult{Kind: Structured, Combos: combos, Raw: raw}
	}

	return ParseResult{Kind: Unstructured, Raw: raw, Reason: "JSON block did not decode to combos"}
}

// decodeCombos accepts either {"combos": [...]} or a bare [...] list.
func decodeCombos(text string) ([]ComboDescriptor, bool) {
	if strings.HasPrefix(text, "[") {
		var list []ComboDescriptor
		if err := json.Unmarshal([]byte(text), &list); err == nil && len(list) > 0 {
			return list, true
		}
		return nil, false
	}

	var env comboEnvelope
	if err := json.Unmarshal([]byte(text), &env); err == nil && len(env.Combos) > 0 {
		return env.Combos, true
	}
	return nil, false
}

// extractBalanced returns the first balanced {...} or [...] block in the
// text, tracking nesting and JSON string literals so braces inside
// strings do not end the block early.
func extractBalanced(text string) string {
	start := -1
	var open, close byte
	for i := 0; i < len(text); i++ {
		if text[i] == '{' || text[i] == '[' {
			start = i
			open = text[i]
			if open == '{' {
				close = '}'
			} else {
				close = ']'
			}
			break
		}
	}
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}

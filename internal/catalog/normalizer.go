package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// MissingColumnError is returned when a mandatory logical field has no
// matching column in the uploaded header. The load is aborted; no partial
// catalog is produced.
type MissingColumnError struct {
	Field   string
	Aliases []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf(
		"missing required column %q (accepted names: %s)",
		e.Field,
		strings.Join(e.Aliases, ", "),
	)
}

// Normalize turns a raw header + rows into a canonical catalog.
//
// Mandatory fields (id, name, category, base price) abort the load with
// MissingColumnError when absent. Rows with no name or no parseable base
// price are dropped silently; optional fields default to nil.
func Normalize(header []string, rows [][]string) (*Catalog, error) {
	idCol := pickColumn(header, idAliases)
	if idCol == -1 {
		return nil, &MissingColumnError{Field: "product id", Aliases: idAliases}
	}
	nameCol := pickColumn(header, nameAliases)
	if nameCol == -1 {
		return nil, &MissingColumnError{Field: "product name", Aliases: nameAliases}
	}
	catCol := pickColumn(header, categoryAliases)
	if catCol == -1 {
		return nil, &MissingColumnError{Field: "category", Aliases: categoryAliases}
	}
	priceCol := pickColumn(header, priceAliases)
	if priceCol == -1 {
		return nil, &MissingColumnError{Field: "base price", Aliases: priceAliases}
	}

	subCol := pickColumn(header, subcatAliases)
	brandCol := pickColumn(header, brandAliases)
	sizeCol := pickColumn(header, sizeAliases)
	minCol := pickColumn(header, minPriceAliases)

	altCols := make([]int, len(altPriceAliases))
	for i, aliases := range altPriceAliases {
		altCols[i] = pickColumn(header, aliases)
	}

	cat := NewCatalog()

	for _, row := range rows {
		name := strings.TrimSpace(cell(row, nameCol))
		if name == "" {
			continue
		}

		price := parseNumber(cell(row, priceCol))
		if price == nil {
			continue
		}

		p := Product{
			ID:        strings.TrimSpace(cell(row, idCol)),
			Name:      name,
			Category:  strings.TrimSpace(cell(row, catCol)),
			BasePrice: price,
		}
		if p.ID == "" {
			continue
		}

		if subCol != -1 {
			p.Subcategory = strings.TrimSpace(cell(row, subCol))
		}
		if brandCol != -1 {
			p.Brand = strings.TrimSpace(cell(row, brandCol))
		}
		if sizeCol != -1 {
			p.Size = strings.TrimSpace(cell(row, sizeCol))
		}
		if minCol != -1 {
			p.MinPrice = parseNumber(cell(row, minCol))
		}

		var alts []*float64
		hasAlt := false
		for _, col := range altCols {
			var v *float64
			if col != -1 {
				v = parseNumber(cell(row, col))
			}
			if v != nil {
				hasAlt = true
			}
			alts = append(alts, v)
		}
		if hasAlt {
			p.AltPrices = alts
		}

		cat.add(p)
	}

	return cat, nil
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// parseNumber coerces messy price cells ("$1,234.50", " 45 MXN") to a
// float. Keeps digits, one decimal point, and a leading minus; anything
// that still fails to parse becomes nil rather than an error.
func parseNumber(raw string) *float64 {
	var b strings.Builder
	sawDot := false
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !sawDot:
			sawDot = true
			b.WriteRune(r)
		case r == '-' && b.Len() == 0:
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 || b.String() == "-" {
		return nil
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return nil
	}
	return &v
}

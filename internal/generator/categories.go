package generator

import "strings"

// Category pattern matching for combo assembly. Catalog categories are
// free-form operator text ("Pizzas Personales", "Bebidas Frías"), so
// classification is substring-based over a lowercased, de-accented copy.

var accentFold = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n",
)

func fold(category string) string {
	return accentFold.Replace(strings.ToLower(category))
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// isPrincipal matches the main-dish categories that anchor a combo.
func isPrincipal(category string) bool {
	return containsAny(fold(category), "pizza", "burger", "hamburg", "hot dog", "hotdog", "pasta")
}

// isBreakfast matches breakfast mains, the principal pool of last resort.
func isBreakfast(category string) bool {
	return containsAny(fold(category), "desayuno", "breakfast")
}

// isHotDrink matches coffee/tea style drinks. These must never be paired
// with a pizza/burger/hotdog/pasta principal.
func isHotDrink(category string) bool {
	f := fold(category)
	if containsAny(f, "bebida", "drink") && containsAny(f, "caliente", "hot") {
		return true
	}
	return containsAny(f, "cafe", "capuchino", "americano", "espresso", "tisana")
}

// isColdDrink matches soda/juice/iced drinks, plus drink categories with
// no temperature marker.
func isColdDrink(category string) bool {
	if isHotDrink(category) {
		return false
	}
	return containsAny(fold(category), "bebida", "drink", "refresco", "jugo", "malteada", "smoothie", "agua")
}

func isSnack(category string) bool {
	return containsAny(fold(category), "snack", "botana", "antojo", "complemento", "entrada", "papas", "alitas")
}

func isDessert(category string) bool {
	return containsAny(fold(category), "postre", "dessert", "pastel", "helado", "pan dulce")
}

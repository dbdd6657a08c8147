package catalog

// Column aliases per logical field, in resolution priority order.
// Matching is case-sensitive and exact: CSV exports from the menu
// spreadsheets are stable about casing, and loosening this silently
// grabs the wrong column when both "Precio" and "precio" exist.
var (
	idAliases       = []string{"SKU", "ID", "Clave", "Código", "Codigo"}
	nameAliases     = []string{"Nombre del Producto", "Producto", "Nombre"}
	categoryAliases = []string{"Categoría", "Categoria"}
	priceAliases    = []string{"Precio (MXN)", "Precio", "precio"}
	subcatAliases   = []string{"Subcategoría", "Subcategoria"}
	brandAliases    = []string{"Restaurante", "Marca", "Origen", "Proveedor"}
	sizeAliases     = []string{"Tamaño", "Presentación", "Tamano", "Size"}
	minPriceAliases = []string{"Precio Mínimo (MXN)", "Precio Mínimo", "Precio Minimo", "Precio Min"}

	// Alternate presentation tiers, each optional.
	altPriceAliases = [][]string{
		{"Precio Chica", "Precio 1"},
		{"Precio Mediana", "Precio 2"},
		{"Precio Grande", "Precio 3"},
		{"Precio Familiar", "Precio 4"},
	}
)

// pickColumn returns the index of the first alias present in the header,
// or -1 when none match.
func pickColumn(header []string, aliases []string) int {
	for _, alias := range aliases {
		for i, col := range header {
			if col == alias {
				return i
			}
		}
	}
	return -1
}

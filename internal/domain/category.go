package domain

// Category is one of the fixed product categories shared by the catalog
// filter and the product creation form. The values are the catalog API's
// wire strings; the server filters on exact match.
type Category string

// Product category constants.
const (
	CategoryElectronics Category = "Électronique"
	CategoryClothing    Category = "Vêtements"
	CategoryFood        Category = "Alimentation"
	CategoryHome        Category = "Maison"
	CategorySport       Category = "Sport"
	CategoryToys        Category = "Jouets"
)

// Categories returns the closed category set in display order.
func Categories() []Category {
	return []Category{
		CategoryElectronics,
		CategoryClothing,
		CategoryFood,
		CategoryHome,
		CategorySport,
		CategoryToys,
	}
}

// IsValidCategory checks whether s exactly matches one of the categories.
func IsValidCategory(s string) bool {
	for _, c := range Categories() {
		if string(c) == s {
			return true
		}
	}
	return false
}

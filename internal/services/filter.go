package services

import (
	"strings"

	"inventario/internal/models"
)

// FilterCriteria determines the visible subset of the catalog: a category
// selector plus a free-text search term. Neither is persisted.
type FilterCriteria struct {
	Category string
	Search   string
}

// FilterProducts returns the ordered subsequence of products matching the
// criteria. Category matches when the criterion is "all" (or empty) or equals
// the product category exactly, case-sensitively. The search term matches
// case-insensitively against name, description or sku. Both conditions must
// hold. The filter is pure and stable: surviving products keep their
// relative order, and identical inputs always yield identical output.
func FilterProducts(products []models.Product, criteria FilterCriteria) []models.Product {
	term := strings.ToLower(criteria.Search)
	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if criteria.Category != "" && criteria.Category != models.CategoryAll && p.Category != criteria.Category {
			continue
		}
		if term != "" && !matchesSearch(p, term) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func matchesSearch(p models.Product, term string) bool {
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term) ||
		strings.Contains(strings.ToLower(p.SKU), term)
}

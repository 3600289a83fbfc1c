// Package category derives the category set from the product collection and
// models the two ways a form can supply a category.
package category

import "github.com/fekuna/omnipos-catalog-admin/internal/model"

// Derive returns the distinct non-empty categories of products, in order of
// first appearance.
func Derive(products []model.Product) []string {
	seen := make(map[string]struct{}, len(products))
	out := make([]string, 0)
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

// Contains reports whether name is one of set.
func Contains(set []string, name string) bool {
	for _, c := range set {
		if c == name {
			return true
		}
	}
	return false
}

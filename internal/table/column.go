package table

import (
	"strings"

	"github.com/fekuna/omnipos-catalog-admin/internal/model"
)

// Column describes how one product field is shown, filtered and sorted.
type Column struct {
	Key      string
	Header   string
	Hidden   bool
	Sortable bool
	// Value is the stringified cell used for filtering and default sorting.
	Value func(model.Product) string
	// Render is the display form; Value is used when nil.
	Render func(model.Product) string
	// Compare orders two products; text collation of Value is used when nil.
	Compare func(a, b model.Product) int
}

func (c Column) cell(p model.Product) string {
	if c.Render != nil {
		return c.Render(p)
	}
	return c.Value(p)
}

// FilterOption is one entry of the filter-column selector.
type FilterOption struct {
	Column      string
	Label       string
	Placeholder string
}

// ProductColumns is the fixed column set of the product table.
func ProductColumns() []Column {
	return []Column{
		{
			Key:    "_id",
			Hidden: true,
			Value:  func(p model.Product) string { return p.ID },
		},
		{
			Key:      "name",
			Header:   "Product",
			Sortable: true,
			Value:    func(p model.Product) string { return p.Name },
		},
		{
			Key:      "price",
			Header:   "Price",
			Sortable: true,
			Value:    func(p model.Product) string { return p.Price.StringFixed(2) },
			Render:   func(p model.Product) string { return FormatPrice(p) },
			Compare:  func(a, b model.Product) int { return a.Price.Cmp(b.Price) },
		},
		{
			Key:      "category",
			Header:   "Category",
			Sortable: true,
			Value:    func(p model.Product) string { return p.Category },
		},
	}
}

// ProductFilters lists the columns the single filter box can target.
func ProductFilters() []FilterOption {
	return []FilterOption{
		{Column: "_id", Label: "Id", Placeholder: "Filter by id"},
		{Column: "name", Label: "Name", Placeholder: "Filter by name"},
		{Column: "category", Label: "Category", Placeholder: "Filter by category"},
	}
}

// FormatPrice renders a price as "R$ 1234,50".
func FormatPrice(p model.Product) string {
	return "R$ " + strings.Replace(p.Price.StringFixed(2), ".", ",", 1)
}

package dto

import "github.com/shopspring/decimal"

// CreateProductInput is the POST /products body.
type CreateProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"image_url,omitempty"`
}

// UpdateProductInput is a partial product; nil fields are left untouched by
// the API. A non-nil empty ImageURL clears the image.
type UpdateProductInput struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Category    *string          `json:"category,omitempty"`
	ImageURL    *string          `json:"image_url,omitempty"`
}

func (in *UpdateProductInput) IsEmpty() bool {
	return in.Name == nil && in.Description == nil && in.Price == nil &&
		in.Category == nil && in.ImageURL == nil
}

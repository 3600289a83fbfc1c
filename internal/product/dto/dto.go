package dto

import "github.com/fekuna/omnipos-catalog-admin/internal/model"

type ProductListResponse struct {
	Products []model.Product `json:"products"`
}

type ProductResponse struct {
	Product model.Product `json:"product"`
}

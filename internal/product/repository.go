package product

import (
	"context"

	"github.com/fekuna/omnipos-catalog-admin/internal/model"
	"github.com/fekuna/omnipos-catalog-admin/internal/product/dto"
)

type Repository interface {
	FindAll(ctx context.Context) ([]model.Product, error)
	Create(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	Update(ctx context.Context, id string, input *dto.UpdateProductInput) (*model.Product, error)
	Delete(ctx context.Context, id string) error
}

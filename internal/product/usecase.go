package product

import (
	"context"

	"github.com/fekuna/omnipos-catalog-admin/internal/catalog"
	"github.com/fekuna/omnipos-catalog-admin/internal/model"
	"github.com/fekuna/omnipos-catalog-admin/internal/product/dto"
)

type UseCase interface {
	LoadProducts(ctx context.Context) (catalog.Snapshot, error)
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, id string, input *dto.UpdateProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	Categories() []string
	Snapshot() catalog.Snapshot
}

package repository

import (
	"context"
	"net/http"
	"net/url"

	"github.com/fekuna/omnipos-catalog-admin/internal/gateway"
	"github.com/fekuna/omnipos-catalog-admin/internal/model"
	"github.com/fekuna/omnipos-catalog-admin/internal/product"
	"github.com/fekuna/omnipos-catalog-admin/internal/product/dto"
)

type httpRepository struct {
	client *gateway.Client
}

func NewHTTPRepository(client *gateway.Client) product.Repository {
	return &httpRepository{client: client}
}

func (r *httpRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	var resp dto.ProductListResponse
	err := r.client.Do(ctx, gateway.Request{
		Op:     "list products",
		Method: http.MethodGet,
		Path:   "/products",
		Auth:   true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Products == nil {
		resp.Products = []model.Product{}
	}
	return resp.Products, nil
}

func (r *httpRepository) Create(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	var resp dto.ProductResponse
	err := r.client.Do(ctx, gateway.Request{
		Op:     "create product",
		Method: http.MethodPost,
		Path:   "/products",
		Body:   input,
		Auth:   true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Product, nil
}

func (r *httpRepository) Update(ctx context.Context, id string, input *dto.UpdateProductInput) (*model.Product, error) {
	var resp dto.ProductResponse
	err := r.client.Do(ctx, gateway.Request{
		Op:     "update product",
		Method: http.MethodPut,
		Path:   "/products/" + url.PathEscape(id),
		Body:   input,
		Auth:   true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Product, nil
}

func (r *httpRepository) Delete(ctx context.Context, id string) error {
	return r.client.Do(ctx, gateway.Request{
		Op:     "delete product",
		Method: http.MethodDelete,
		Path:   "/products/" + url.PathEscape(id),
		Auth:   true,
	}, nil)
}

package repository

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fekuna/omnipos-catalog-admin/internal/gateway"
	"github.com/fekuna/omnipos-catalog-admin/internal/pkg/logger"
	"github.com/fekuna/omnipos-catalog-admin/internal/product"
	"github.com/fekuna/omnipos-catalog-admin/internal/product/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newRepo(t *testing.T, h http.HandlerFunc) product.Repository {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	client := gateway.NewClient(gateway.Config{BaseURL: srv.URL, Timeout: time.Second}, staticToken("tok"), logger.NewNopLogger())
	return NewHTTPRepository(client)
}

func TestFindAllDecodesEnvelope(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"products":[{"_id":"a1","name":"Shirt","price":12.5,"category":"Clothes"},{"id":"b2","name":"Shoe","price":30,"category":"Footwear"}]}`)
	})

	products, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "a1", products[0].ID)
	assert.Equal(t, "b2", products[1].ID)
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("12.5")))
}

func TestFindAllEmptyList(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	})

	products, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestCreateSendsBody(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Hat", body["name"])
		assert.Equal(t, 9.9, body["price"])
		assert.NotContains(t, body, "image_url")

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"product":{"_id":"n1","name":"Hat","price":9.9,"category":"Headwear"}}`)
	})

	p, err := repo.Create(context.Background(), &dto.CreateProductInput{
		Name:        "Hat",
		Description: "Wool",
		Price:       decimal.RequireFromString("9.9"),
		Category:    "Headwear",
	})

	require.NoError(t, err)
	assert.Equal(t, "n1", p.ID)
}

func TestUpdateSendsOnlyChangedFields(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/products/a%2F1", r.URL.EscapedPath())
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"name": "Polo"}, body)

		_, _ = io.WriteString(w, `{"product":{"_id":"a/1","name":"Polo","price":10,"category":"Clothes"}}`)
	})
	name := "Polo"

	p, err := repo.Update(context.Background(), "a/1", &dto.UpdateProductInput{Name: &name})

	require.NoError(t, err)
	assert.Equal(t, "Polo", p.Name)
}

func TestDeleteAcceptsEmptyBody(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/products/a1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, repo.Delete(context.Background(), "a1"))
}

func TestDeleteSurfacesServerMessage(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"Product not found"}`)
	})

	err := repo.Delete(context.Background(), "missing")

	assert.Equal(t, "Product not found", gateway.ServerMessage(err))
	assert.False(t, gateway.IsUnauthorized(err))
}

package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductDecodesEitherIdentityKey(t *testing.T) {
	var withUnderscore, plain Product
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"a1","name":"Shirt","price":19.9}`), &withUnderscore))
	require.NoError(t, json.Unmarshal([]byte(`{"id":"b2","name":"Shoe","price":"5"}`), &plain))

	assert.Equal(t, "a1", withUnderscore.ID)
	assert.True(t, withUnderscore.Price.Equal(decimal.RequireFromString("19.9")))
	assert.Equal(t, "b2", plain.ID)
	assert.True(t, plain.Persisted())
}

func TestProductEncodesPriceAsNumber(t *testing.T) {
	p := Product{Name: "Shirt", Price: decimal.RequireFromString("12.50"), Category: "Clothes"}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"price":12.5`)
	assert.NotContains(t, string(data), `"_id"`)
	assert.NotContains(t, string(data), `"image_url"`)
	assert.False(t, p.Persisted())
}

package catalog

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/fekuna/omnipos-catalog-admin/internal/category"
	"github.com/fekuna/omnipos-catalog-admin/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id, name, cat string, price string) model.Product {
	return model.Product{
		BaseModel: model.BaseModel{ID: id},
		Name:      name,
		Category:  cat,
		Price:     decimal.RequireFromString(price),
	}
}

func ids(products []model.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestLoadKeepsServerOrderAndDerivesCategories(t *testing.T) {
	c := New(nil)

	require.NoError(t, c.Load([]model.Product{
		product("1", "Shirt", "Clothes", "10"),
		product("2", "Shoe", "Footwear", "20"),
		product("3", "Hat", "Clothes", "5"),
	}))

	snap := c.Snapshot()
	assert.True(t, snap.Loaded)
	assert.Equal(t, []string{"1", "2", "3"}, ids(snap.Products))
	assert.Equal(t, []string{"Clothes", "Footwear"}, snap.Categories)
}

func TestLoadRejectsInvalidInputAtomically(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.Load([]model.Product{product("1", "Shirt", "Clothes", "10")}))

	err := c.Load([]model.Product{product("2", "Shoe", "F", "1"), product("", "Ghost", "F", "1")})
	assert.ErrorIs(t, err, ErrMissingID)

	err = c.Load([]model.Product{product("2", "Shoe", "F", "1"), product("2", "Shoe", "F", "1")})
	assert.ErrorIs(t, err, ErrDuplicateID)

	assert.Equal(t, []string{"1"}, ids(c.Snapshot().Products))
}

func TestAddRequiresServerID(t *testing.T) {
	c := New(nil)

	assert.ErrorIs(t, c.Add(product("", "Draft", "X", "1")), ErrMissingID)
	assert.Equal(t, 0, c.Len())
}

func TestAddRejectsDuplicate(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.Add(product("1", "Shirt", "Clothes", "10")))

	assert.ErrorIs(t, c.Add(product("1", "Other", "Misc", "1")), ErrDuplicateID)
	assert.Equal(t, []string{"Clothes"}, c.Categories())
}

func TestReplaceKeepsPosition(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.Load([]model.Product{
		product("1", "Shirt", "Clothes", "10"),
		product("2", "Shoe", "Footwear", "20"),
		product("3", "Hat", "Clothes", "5"),
	}))

	ok, err := c.Replace("2", product("", "Boot", "Winter", "30"))
	require.NoError(t, err)
	assert.True(t, ok)

	snap := c.Snapshot()
	assert.Equal(t, []string{"1", "2", "3"}, ids(snap.Products))
	assert.Equal(t, "Boot", snap.Products[1].Name)
	assert.Equal(t, "Shirt", snap.Products[0].Name)
	assert.Equal(t, "Hat", snap.Products[2].Name)
	assert.Equal(t, []string{"Clothes", "Winter"}, snap.Categories)
}

func TestReplaceUnknownIsNoop(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.Load([]model.Product{product("1", "Shirt", "Clothes", "10")}))
	before := c.Snapshot()

	ok, err := c.Replace("404", product("404", "Ghost", "Nowhere", "1"))

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, before, c.Snapshot())
}

func TestReplaceRejectsDifferentID(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.Load([]model.Product{product("1", "Shirt", "Clothes", "10")}))

	_, err := c.Replace("1", product("2", "Shoe", "F", "1"))
	assert.ErrorIs(t, err, ErrIDMismatch)
}

func TestRemoveUnknownIsNoop(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.Load([]model.Product{product("1", "Shirt", "Clothes", "10")}))
	before := c.Snapshot()

	assert.False(t, c.Remove("404"))
	assert.Equal(t, before, c.Snapshot())
}

func TestRemoveReindexes(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.Load([]model.Product{
		product("1", "Shirt", "Clothes", "10"),
		product("2", "Shoe", "Footwear", "20"),
		product("3", "Hat", "Hats", "5"),
	}))

	assert.True(t, c.Remove("1"))
	got, ok := c.Get("3")
	require.True(t, ok)
	assert.Equal(t, "Hat", got.Name)
	assert.Equal(t, []string{"Footwear", "Hats"}, c.Categories())

	ok, err := c.Replace("3", product("3", "Cap", "Hats", "6"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"2", "3"}, ids(c.Snapshot().Products))
}

func TestMutationPublishesFreshSnapshotSynchronously(t *testing.T) {
	bus := EventBus.New()
	c := New(bus)

	var seen []Snapshot
	require.NoError(t, bus.Subscribe(TopicChanged, func(s Snapshot) {
		// the collection must already agree with what is published
		assert.Equal(t, s.Categories, c.Categories())
		seen = append(seen, s)
	}))

	require.NoError(t, c.Load([]model.Product{product("1", "Shirt", "Clothes", "10")}))
	require.NoError(t, c.Add(product("2", "Shoe", "Footwear", "20")))
	c.Remove("404")
	c.Remove("1")

	require.Len(t, seen, 3)
	assert.Equal(t, []uint64{1, 2, 3}, []uint64{seen[0].Version, seen[1].Version, seen[2].Version})
	assert.Equal(t, []string{"Footwear"}, seen[2].Categories)
}

func TestRandomMutationsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	cats := []string{"A", "B", "C", "D"}
	c := New(nil)
	next := 0

	for step := 0; step < 2000; step++ {
		id := fmt.Sprintf("p%d", rng.Intn(next+1))
		p := product(id, "n", cats[rng.Intn(len(cats))], "1")
		switch rng.Intn(3) {
		case 0:
			next++
			p.ID = fmt.Sprintf("p%d", next)
			require.NoError(t, c.Add(p))
		case 1:
			_, err := c.Replace(id, p)
			require.NoError(t, err)
		case 2:
			c.Remove(id)
		}

		snap := c.Snapshot()
		unique := map[string]bool{}
		for _, q := range snap.Products {
			require.NotEmpty(t, q.ID)
			require.False(t, unique[q.ID], "duplicate id %s at step %d", q.ID, step)
			unique[q.ID] = true
		}
		require.Equal(t, category.Derive(snap.Products), snap.Categories, "stale categories at step %d", step)
	}
}

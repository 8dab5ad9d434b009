package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tienda_back_end/internal/models"
)

func TestMemoryProvider_ListAll(t *testing.T) {
	m := NewMemoryProvider(SeedProducts())

	products, err := m.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 8)
}

func TestMemoryProvider_GetByID(t *testing.T) {
	m := NewMemoryProvider(SeedProducts())

	p, err := m.GetByID(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "1", p.ID)
	assert.NotEmpty(t, p.Name)
}

func TestMemoryProvider_GetByID_NotFound(t *testing.T) {
	m := NewMemoryProvider(SeedProducts())

	_, err := m.GetByID(context.Background(), "999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryProvider_ListByCategory(t *testing.T) {
	m := NewMemoryProvider([]models.Product{
		{ID: "1", Category: "electronics"},
		{ID: "2", Category: "home"},
		{ID: "3", Category: "electronics"},
	})

	products, err := m.ListByCategory(context.Background(), "electronics")
	require.NoError(t, err)
	require.Len(t, products, 2)
	for _, p := range products {
		assert.Equal(t, "electronics", p.Category)
	}

	empty, err := m.ListByCategory(context.Background(), "garden")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMemoryProvider_ListDiscounted(t *testing.T) {
	m := NewMemoryProvider([]models.Product{
		{ID: "1", Price: 10, Discount: 8},
		{ID: "2", Price: 20},
		{ID: "3", Price: 30, Discount: 15},
	})

	products, err := m.ListDiscounted(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	for _, p := range products {
		assert.Greater(t, p.Discount, 0.0)
	}
}

func TestSeedProducts_ValidSeedData(t *testing.T) {
	// Le catalogue de démo alimente ScyllaProvider.Seed au démarrage :
	// ids uniques, fiches complètes
	products := SeedProducts()
	require.Len(t, products, 8)

	seen := make(map[string]bool)
	for _, p := range products {
		assert.False(t, seen[p.ID], "id %s en double", p.ID)
		seen[p.ID] = true
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.Description)
		assert.NotEmpty(t, p.Category)
		assert.Greater(t, p.Price, 0.0)
	}
}

func TestSeedProducts_EffectivePrices(t *testing.T) {
	for _, p := range SeedProducts() {
		if p.Discount > 0 {
			assert.Equal(t, p.Discount, p.EffectivePrice(), p.Name)
			assert.Less(t, p.Discount, p.Price, "the discounted price undercuts the list price")
		} else {
			assert.Equal(t, p.Price, p.EffectivePrice(), p.Name)
		}
	}
}

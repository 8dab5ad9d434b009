package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tienda_back_end/internal/models"
)

func TestStore_Add_NewLine(t *testing.T) {
	s := NewStore()
	s.Add(models.Product{ID: "1", Name: "Auriculares", Description: "Auriculares inalámbricos premium", Price: 89.99, Discount: 69.99, Image: "img.jpg"})

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "1", items[0].ProductID)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 89.99, items[0].Price)
	assert.Equal(t, 69.99, items[0].Discount)
	assert.Equal(t, "Auriculares inalámbricos premium", items[0].Description)
}

func TestStore_Add_IncrementsExisting(t *testing.T) {
	s := NewStore()
	p := models.Product{ID: "1", Name: "Auriculares", Price: 89.99}

	s.Add(p)
	s.Add(p)
	s.Add(p)

	items := s.Items()
	require.Len(t, items, 1, "adding the same product must not create a second line")
	assert.Equal(t, 3, items[0].Quantity)
}

func TestStore_Add_NoStockCeiling(t *testing.T) {
	// L'ajout n'applique aucun plafond de stock, c'est le checkout qui
	// revalide avant paiement
	s := NewStore()
	p := models.Product{ID: "1", Name: "Reloj", Price: 199.99, Stock: 2}

	for i := 0; i < 5; i++ {
		s.Add(p)
	}

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestStore_UpdateQuantity(t *testing.T) {
	s := NewStore()
	s.Add(models.Product{ID: "1", Price: 10})

	s.UpdateQuantity("1", 7)
	assert.Equal(t, 7, s.Items()[0].Quantity)
}

func TestStore_UpdateQuantity_BelowOneRemovesLine(t *testing.T) {
	s := NewStore()
	s.Add(models.Product{ID: "1", Price: 10})
	s.Add(models.Product{ID: "2", Price: 20})

	s.UpdateQuantity("1", 0)
	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "2", items[0].ProductID)

	s.UpdateQuantity("2", -3)
	assert.Equal(t, 0, s.Len())
}

func TestStore_UpdateQuantity_UnknownProduct(t *testing.T) {
	s := NewStore()
	s.Add(models.Product{ID: "1", Price: 10})

	s.UpdateQuantity("999", 4)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestStore_Remove(t *testing.T) {
	s := NewStore()
	s.Add(models.Product{ID: "1", Price: 10})
	s.Add(models.Product{ID: "2", Price: 20})

	s.Remove("1")
	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "2", items[0].ProductID)

	// No-op si le produit n'est pas dans le panier
	s.Remove("999")
	assert.Equal(t, 1, s.Len())
}

func TestStore_Clear(t *testing.T) {
	s := NewStore()
	s.Add(models.Product{ID: "1", Price: 10})
	s.Add(models.Product{ID: "2", Price: 20})

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Items())
}

func TestStore_Subtotal_UsesEffectivePrice(t *testing.T) {
	s := NewStore()
	// Remisé : 69.99 compte, pas 89.99
	discounted := models.Product{ID: "1", Price: 89.99, Discount: 69.99}
	// Plein tarif
	full := models.Product{ID: "2", Price: 24.99}

	s.Add(discounted)
	s.Add(discounted)
	s.Add(full)

	assert.InDelta(t, 2*69.99+24.99, s.Subtotal(), 1e-9)
}

func TestStore_Subtotal_Empty(t *testing.T) {
	s := NewStore()
	assert.Equal(t, 0.0, s.Subtotal())
}

func TestStore_Items_ReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Add(models.Product{ID: "1", Price: 10})

	items := s.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, s.Items()[0].Quantity, "mutating the returned slice must not touch the store")
}

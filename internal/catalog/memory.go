package catalog

import (
	"context"

	"tienda_back_end/internal/models"
)

// MemoryProvider sert un catalogue figé en mémoire. Utilisé au démarrage
// pour peupler ScyllaDB et comme provider de secours en dev.
type MemoryProvider struct {
	products []models.Product
}

func NewMemoryProvider(products []models.Product) *MemoryProvider {
	return &MemoryProvider{products: products}
}

func (m *MemoryProvider) ListAll(_ context.Context) ([]models.Product, error) {
	out := make([]models.Product, len(m.products))
	copy(out, m.products)
	return out, nil
}

func (m *MemoryProvider) ListByCategory(_ context.Context, category string) ([]models.Product, error) {
	var out []models.Product
	for _, p := range m.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MemoryProvider) ListDiscounted(_ context.Context) ([]models.Product, error) {
	var out []models.Product
	for _, p := range m.products {
		if p.Discount > 0 {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MemoryProvider) GetByID(_ context.Context, id string) (*models.Product, error) {
	for _, p := range m.products {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// SeedProducts est le catalogue de démo livré avec la boutique
func SeedProducts() []models.Product {
	return []models.Product{
		{
			ID:          "1",
			Name:        "Smartphone Galaxy X20",
			Description: "El último smartphone con pantalla AMOLED de 6.5 pulgadas, 8GB RAM y 128GB de almacenamiento.",
			Price:       899.99,
			Discount:    799.99,
			Image:       "https://images.unsplash.com/photo-1598327105666-5b89351aff97?auto=format&fit=crop&w=600&h=600",
			Category:    "electronics",
			Rating:      4.5,
			ReviewCount: 127,
			Stock:       25,
		},
		{
			ID:          "2",
			Name:        "Laptop ProBook Air",
			Description: "Laptop ultradelgada con procesador i7 de 11ª generación, 16GB RAM y SSD de 512GB.",
			Price:       1299.99,
			Discount:    0,
			Image:       "https://images.unsplash.com/photo-1496181133206-80ce9b88a853?auto=format&fit=crop&w=600&h=600",
			Category:    "electronics",
			Rating:      5,
			ReviewCount: 94,
			Stock:       12,
		},
		{
			ID:          "3",
			Name:        "Auriculares Noise Cancel",
			Description: "Auriculares con cancelación de ruido, conexión Bluetooth 5.0 y 30 horas de autonomía.",
			Price:       249.99,
			Discount:    199.99,
			Image:       "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?auto=format&fit=crop&w=600&h=600",
			Category:    "electronics",
			Rating:      4,
			ReviewCount: 76,
			Stock:       32,
		},
		{
			ID:          "4",
			Name:        "Zapatillas Running Pro",
			Description: "Zapatillas deportivas con amortiguación premium y suela antideslizante.",
			Price:       129.99,
			Discount:    0,
			Image:       "https://images.unsplash.com/photo-1542291026-7eec264c27ff?auto=format&fit=crop&w=600&h=600",
			Category:    "clothing",
			Rating:      4.5,
			ReviewCount: 53,
			Stock:       45,
		},
		{
			ID:          "5",
			Name:        "Chaqueta Impermeable",
			Description: "Chaqueta ligera e impermeable con capucha para actividades al aire libre.",
			Price:       89.99,
			Discount:    69.99,
			Image:       "https://images.unsplash.com/photo-1591047139829-d91aecb6caea?auto=format&fit=crop&w=600&h=600",
			Category:    "clothing",
			Rating:      4,
			ReviewCount: 28,
			Stock:       20,
		},
		{
			ID:          "6",
			Name:        "Reloj Inteligente FitTrack",
			Description: "Smartwatch con monitor de ritmo cardíaco, seguimiento de actividad y notificaciones.",
			Price:       199.99,
			Discount:    149.99,
			Image:       "https://images.unsplash.com/photo-1523275335684-37898b6baf30?auto=format&fit=crop&w=600&h=600",
			Category:    "electronics",
			Rating:      4,
			ReviewCount: 64,
			Stock:       18,
		},
		{
			ID:          "7",
			Name:        "Lámpara de Escritorio LED",
			Description: "Lámpara de escritorio con luz LED ajustable y puerto USB para carga.",
			Price:       49.99,
			Discount:    0,
			Image:       "https://images.unsplash.com/photo-1507473885765-e6ed057f782c?auto=format&fit=crop&w=600&h=600",
			Category:    "home",
			Rating:      4.5,
			ReviewCount: 37,
			Stock:       40,
		},
		{
			ID:          "8",
			Name:        "Mochila Resistente al Agua",
			Description: "Mochila con compartimento para portátil, resistente al agua y múltiples bolsillos.",
			Price:       79.99,
			Discount:    0,
			Image:       "https://images.unsplash.com/photo-1622560480654-d96214fdc887?auto=format&fit=crop&w=600&h=600",
			Category:    "clothing",
			Rating:      5,
			ReviewCount: 19,
			Stock:       22,
		},
	}
}

package catalog

import (
	"context"
	"errors"

	"tienda_back_end/internal/models"
)

var ErrNotFound = errors.New("produit introuvable")

// Provider est la source du catalogue produits. L'implémentation Scylla
// sert la prod, l'implémentation mémoire sert le bootstrap et les tests.
type Provider interface {
	ListAll(ctx context.Context) ([]models.Product, error)
	ListByCategory(ctx context.Context, category string) ([]models.Product, error)
	ListDiscounted(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
}

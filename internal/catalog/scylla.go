package catalog

import (
	"context"

	"github.com/gocql/gocql"

	"tienda_back_end/internal/cache"
	"tienda_back_end/internal/models"
)

const productColumns = `product_id, name, description, price, discount, image_url, category, rating, review_count, stock, created_at, updated_at`

// ScyllaProvider sert le catalogue depuis ScyllaDB avec Redis devant
// pour les listes chaudes. Le schéma vit dans scripts/scylladb_init.cql.
type ScyllaProvider struct {
	session func() (*gocql.Session, error)
}

// NewScyllaProvider prend un fournisseur de session (database.GetProductsSession)
// plutôt qu'une session figée : la session peut être recréée en cours de route.
func NewScyllaProvider(session func() (*gocql.Session, error)) *ScyllaProvider {
	return &ScyllaProvider{session: session}
}

func scanProducts(iter *gocql.Iter) ([]models.Product, error) {
	var products []models.Product
	var p models.Product

	for iter.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Discount, &p.Image,
		&p.Category, &p.Rating, &p.ReviewCount, &p.Stock, &p.CreatedAt, &p.UpdatedAt) {
		products = append(products, p)
		p = models.Product{} // Reset pour la prochaine itération
	}

	if err := iter.Close(); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *ScyllaProvider) ListAll(ctx context.Context) ([]models.Product, error) {
	if cached, ok := cache.GetCatalogList("products:all"); ok {
		return cached, nil
	}

	session, err := s.session()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT ` + productColumns + ` FROM products`).WithContext(ctx).Iter()
	products, err := scanProducts(iter)
	if err != nil {
		return nil, err
	}

	cache.SetCatalogList("products:all", products)
	return products, nil
}

func (s *ScyllaProvider) ListByCategory(ctx context.Context, category string) ([]models.Product, error) {
	session, err := s.session()
	if err != nil {
		return nil, err
	}

	// products_by_category est partitionnée par catégorie, pas de scan complet
	iter := session.Query(`SELECT `+productColumns+` FROM products_by_category WHERE category = ?`, category).
		WithContext(ctx).Iter()
	return scanProducts(iter)
}

func (s *ScyllaProvider) ListDiscounted(ctx context.Context) ([]models.Product, error) {
	if cached, ok := cache.GetCatalogList("products:discounted"); ok {
		return cached, nil
	}

	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var discounted []models.Product
	for _, p := range all {
		if p.Discount > 0 {
			discounted = append(discounted, p)
		}
	}

	cache.SetCatalogList("products:discounted", discounted)
	return discounted, nil
}

func (s *ScyllaProvider) GetByID(ctx context.Context, id string) (*models.Product, error) {
	if p := cache.GetProductFromCache(id); p != nil {
		return p, nil
	}

	session, err := s.session()
	if err != nil {
		return nil, err
	}

	var p models.Product
	err = session.Query(`SELECT `+productColumns+` FROM products WHERE product_id = ?`, id).
		WithContext(ctx).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Discount, &p.Image,
			&p.Category, &p.Rating, &p.ReviewCount, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	if err == gocql.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	cache.SetProductInCache(p)
	return &p, nil
}

// Seed insère le catalogue de démo si la table est vide
func (s *ScyllaProvider) Seed(ctx context.Context, products []models.Product) error {
	session, err := s.session()
	if err != nil {
		return err
	}

	var count int
	if err := session.Query(`SELECT COUNT(*) FROM products`).WithContext(ctx).Scan(&count); err == nil && count > 0 {
		return nil
	}

	for _, p := range products {
		if err := session.Query(`INSERT INTO products (product_id, name, description, price, discount, image_url, category, rating, review_count, stock)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Name, p.Description, p.Price, p.Discount, p.Image, p.Category, p.Rating, p.ReviewCount, p.Stock).
			WithContext(ctx).Exec(); err != nil {
			return err
		}
		if err := session.Query(`INSERT INTO products_by_category (category, product_id, name, description, price, discount, image_url, rating, review_count, stock)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.Category, p.ID, p.Name, p.Description, p.Price, p.Discount, p.Image, p.Rating, p.ReviewCount, p.Stock).
			WithContext(ctx).Exec(); err != nil {
			return err
		}
	}
	return nil
}

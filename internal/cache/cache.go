package cache

import (
	"context"
	"encoding/json"
	"time"

	"tienda_back_end/internal/database"
	"tienda_back_end/internal/models"
)

const (
	ProductCacheTTL = 10 * time.Minute
	CatalogCacheTTL = time.Hour
)

// GetProductFromCache récupère un produit depuis Redis, ou nil si absent
func GetProductFromCache(productID string) *models.Product {
	ctx := context.Background()

	data, err := database.Redis.Get(ctx, "product:"+productID).Result()
	if err != nil {
		return nil
	}

	var p models.Product
	if json.Unmarshal([]byte(data), &p) != nil {
		return nil
	}
	return &p
}

// SetProductInCache met un produit en cache
func SetProductInCache(p models.Product) {
	ctx := context.Background()
	if data, err := json.Marshal(p); err == nil {
		database.Redis.Set(ctx, "product:"+p.ID, data, ProductCacheTTL)
	}
}

// InvalidateProductCache invalide le cache d'un produit et les listes du catalogue
func InvalidateProductCache(productID string) {
	ctx := context.Background()
	database.Redis.Del(ctx, "product:"+productID,
		"products:all", "products:discounted")
}

// GetCatalogList récupère une liste de produits mise en cache (products:all, ...)
func GetCatalogList(key string) ([]models.Product, bool) {
	ctx := context.Background()

	data, err := database.Redis.Get(ctx, key).Result()
	if err != nil || data == "" {
		return nil, false
	}

	var products []models.Product
	if json.Unmarshal([]byte(data), &products) != nil {
		return nil, false
	}
	return products, true
}

// SetCatalogList met une liste de produits en cache
func SetCatalogList(key string, products []models.Product) {
	ctx := context.Background()
	if data, err := json.Marshal(products); err == nil {
		database.Redis.Set(ctx, key, data, CatalogCacheTTL)
	}
}

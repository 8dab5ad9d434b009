package product

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"tienda_back_end/internal/catalog"
	"tienda_back_end/internal/models"
	"tienda_back_end/internal/services"
)

// Handlers sert le catalogue en HTTP, provider injecté
type Handlers struct {
	Catalog catalog.Provider
}

func NewHandlers(provider catalog.Provider) *Handlers {
	return &Handlers{Catalog: provider}
}

// GetAllProducts liste tout le catalogue
func (h *Handlers) GetAllProducts(c *gin.Context) {
	products, err := h.Catalog.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProductByID retourne une fiche produit, 404 si absente
func (h *Handlers) GetProductByID(c *gin.Context) {
	p, err := h.Catalog.GetByID(c.Request.Context(), c.Param("id"))
	if err == catalog.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produit"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// GetProductsByCategory liste les produits d'une catégorie
func (h *Handlers) GetProductsByCategory(c *gin.Context) {
	products, err := h.Catalog.ListByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetDiscountedProducts liste les produits en promo (discount > 0)
func (h *Handlers) GetDiscountedProducts(c *gin.Context) {
	products, err := h.Catalog.ListDiscounted(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// SearchProducts cherche dans Elasticsearch, repli sur un scan catalogue
func (h *Handlers) SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paramètre 'q' manquant"})
		return
	}

	// 🔎 1️⃣ Recherche Elasticsearch (prioritaire)
	results, err := services.SearchProducts(query)
	if err == nil && len(results) > 0 {
		// URLs signées MinIO pour les images stockées chez nous
		for i := range results {
			if results[i].Image == "" {
				continue
			}
			if signed, err := services.GenerateSignedURL(c.Request.Context(), results[i].Image, 24*time.Hour); err == nil {
				results[i].Image = signed
			}
		}
		c.JSON(http.StatusOK, results)
		return
	}

	// 🔁 2️⃣ Fallback : filtre naïf sur le catalogue complet
	all, err := h.Catalog.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits"})
		return
	}

	matched := []models.Product{}
	for _, p := range all {
		if containsFold(p.Name, query) || containsFold(p.Description, query) {
			matched = append(matched, p)
		}
	}
	c.JSON(http.StatusOK, matched)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tienda_back_end/internal/cart"
	"tienda_back_end/internal/catalog"
	"tienda_back_end/internal/config"
)

// CartHandlers expose le panier Redis par utilisateur en HTTP.
// Le store et le catalogue sont injectés, pas de global.
type CartHandlers struct {
	Store   *cart.RedisStore
	Catalog catalog.Provider
	Pricing config.PricingConfig
}

func NewCartHandlers(store *cart.RedisStore, provider catalog.Provider, pricing config.PricingConfig) *CartHandlers {
	return &CartHandlers{Store: store, Catalog: provider, Pricing: pricing}
}

// GetCart retourne les lignes du panier
//
// 🟢 GET /api/cart
func (h *CartHandlers) GetCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	items, err := h.Store.Load(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "subtotal": cart.Subtotal(items)})
}

// AddToCart ajoute un produit : ligne existante → quantité +1
//
// 🟢 POST /api/cart/add
func (h *CartHandlers) AddToCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	var input struct {
		ProductID string `json:"productId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	product, err := h.Catalog.GetByID(c.Request.Context(), input.ProductID)
	if err == catalog.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	items, err := h.Store.Add(c.Request.Context(), userID, *product)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit ajouté au panier",
		"items":   items,
	})
}

// UpdateQuantity fixe la quantité d'une ligne, quantité 0 = suppression
//
// 🔁 PUT /api/cart/quantity
func (h *CartHandlers) UpdateQuantity(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	var input struct {
		ProductID string `json:"productId" binding:"required"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	items, err := h.Store.UpdateQuantity(c.Request.Context(), userID, input.ProductID, input.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// RemoveFromCart supprime une ligne du panier
//
// ❌ DELETE /api/cart/:productId
func (h *CartHandlers) RemoveFromCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	items, err := h.Store.Remove(c.Request.Context(), userID, c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit supprimé du panier",
		"items":   items,
	})
}

// ClearCart vide complètement le panier
//
// 🧹 DELETE /api/cart
func (h *CartHandlers) ClearCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	if err := h.Store.Clear(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du vidage du panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Panier vidé avec succès"})
}

// GetSummary retourne le résumé de commande : sous-total, livraison, total
//
// 🧮 GET /api/cart/summary
func (h *CartHandlers) GetSummary(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	items, err := h.Store.Load(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	summary := cart.Summarize(cart.Subtotal(items), h.Pricing)
	c.JSON(http.StatusOK, gin.H{
		"items":   items,
		"summary": summary,
	})
}

package payment

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"tienda_back_end/internal/catalog"
	"tienda_back_end/internal/checkout"
	"tienda_back_end/internal/models"
)

// CartStore est la vue du panier dont le paiement a besoin :
// lire les lignes, vider après paiement. Satisfait par cart.RedisStore.
type CartStore interface {
	Load(ctx context.Context, userID string) ([]models.CartItem, error)
	Clear(ctx context.Context, userID string) error
}

// Handlers porte le flux de paiement : création de session et webhook.
// Un Initiator par utilisateur : une seule soumission en vol par client.
type Handlers struct {
	Cart     CartStore
	Catalog  catalog.Provider
	Creator  checkout.SessionCreator
	Currency string

	initiators sync.Map // userID → *checkout.Initiator
}

func NewHandlers(store CartStore, provider catalog.Provider, creator checkout.SessionCreator, currency string) *Handlers {
	return &Handlers{Cart: store, Catalog: provider, Creator: creator, Currency: currency}
}

func (h *Handlers) initiatorFor(userID string) *checkout.Initiator {
	if v, ok := h.initiators.Load(userID); ok {
		return v.(*checkout.Initiator)
	}
	v, _ := h.initiators.LoadOrStore(userID, checkout.NewInitiator(h.Creator, h.Currency))
	return v.(*checkout.Initiator)
}

// CreateCheckout valide le panier puis crée la session de paiement Stripe.
// Panier vide ou URLs manquantes → rejet avant tout appel réseau.
//
// 💳 POST /api/checkout
func (h *Handlers) CreateCheckout(c *gin.Context) {
	var req struct {
		SuccessURL string `json:"successUrl"`
		CancelURL  string `json:"cancelUrl"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	userID := c.GetString("user_id")
	email := c.GetString("email")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	ctx := c.Request.Context()

	items, err := h.Cart.Load(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	// Revalidation du stock avec les données catalogue actuelles
	for i, item := range items {
		product, err := h.Catalog.GetByID(ctx, item.ProductID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable: " + item.ProductID})
			return
		}
		if product.Stock < item.Quantity {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Stock insuffisant",
				"product":   product.Name,
				"available": product.Stock,
				"requested": item.Quantity,
			})
			return
		}
		// Prix et fiche produit rafraîchis au moment du paiement
		items[i].Name = product.Name
		items[i].Description = product.Description
		items[i].Price = product.Price
		items[i].Discount = product.Discount
	}

	session, err := h.initiatorFor(userID).Initiate(ctx, items, req.SuccessURL, req.CancelURL, userID, email)
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Panier vide"})
		return
	case errors.Is(err, checkout.ErrMissingURLs):
		c.JSON(http.StatusBadRequest, gin.H{"error": "successUrl et cancelUrl sont obligatoires"})
		return
	case errors.Is(err, checkout.ErrInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": "Un paiement est déjà en cours"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionId": session.ID,
		"url":       session.URL,
	})
}

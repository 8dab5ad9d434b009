package product

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"tienda_back_end/internal/cache"
	"tienda_back_end/internal/catalog"
	"tienda_back_end/internal/database"
	"tienda_back_end/internal/models"
	"tienda_back_end/internal/services"
)

// GetReviews liste les avis d'un produit
func (h *Handlers) GetReviews(c *gin.Context) {
	productID := c.Param("id")

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT review_id, user_id, rating, comment, created_at
		FROM reviews_by_product WHERE product_id = ?`, productID).
		WithContext(c.Request.Context()).Iter()

	reviews := []models.Review{}
	var r models.Review
	for iter.Scan(&r.ID, &r.UserID, &r.Rating, &r.Comment, &r.CreatedAt) {
		r.ProductID = productID
		reviews = append(reviews, r)
		r = models.Review{}
	}

	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture avis"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// AddReview ajoute un avis et recalcule la note moyenne du produit
func (h *Handlers) AddReview(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	productID := c.Param("id")

	var input struct {
		Rating  int    `json:"rating" binding:"required,min=1,max=5"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	product, err := h.Catalog.GetByID(c.Request.Context(), productID)
	if err == catalog.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produit"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	review := models.Review{
		ID:        gocql.TimeUUID(),
		ProductID: productID,
		UserID:    userID,
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: time.Now(),
	}

	if err := session.Query(`INSERT INTO reviews_by_product (product_id, review_id, user_id, rating, comment, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		review.ProductID, review.ID, review.UserID, review.Rating, review.Comment, review.CreatedAt).
		WithContext(c.Request.Context()).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement avis"})
		return
	}

	// Moyenne incrémentale : (ancienne note × n + nouvelle) / (n + 1)
	newCount := product.ReviewCount + 1
	newRating := (product.Rating*float64(product.ReviewCount) + float64(input.Rating)) / float64(newCount)

	if err := session.Query(`UPDATE products SET rating = ?, review_count = ? WHERE product_id = ?`,
		newRating, newCount, productID).WithContext(c.Request.Context()).Exec(); err != nil {
		log.Printf("⚠️ Erreur mise à jour note produit %s: %v", productID, err)
	}

	cache.InvalidateProductCache(productID)

	// Réindexation Elasticsearch avec la nouvelle note
	updated := *product
	updated.Rating = newRating
	updated.ReviewCount = newCount
	go services.IndexProduct(updated)

	c.JSON(http.StatusCreated, review)
}

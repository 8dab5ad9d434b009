package product

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tienda_back_end/internal/cache"
	"tienda_back_end/internal/database"
	"tienda_back_end/internal/services"
)

// UploadImage stocke l'image d'un produit dans MinIO et met à jour la fiche
func (h *Handlers) UploadImage(c *gin.Context) {
	productID := c.Param("id")

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fichier 'image' manquant"})
		return
	}

	imageURL, err := services.UploadProductImage(productID, file)
	if err != nil {
		log.Printf("❌ Erreur upload MinIO: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur stockage image"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`UPDATE products SET image_url = ? WHERE product_id = ?`,
		imageURL, productID).WithContext(c.Request.Context()).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}

	cache.InvalidateProductCache(productID)

	c.JSON(http.StatusOK, gin.H{"image_url": imageURL})
}

// GetSignedImageURL retourne une URL signée à durée limitée pour l'image
func (h *Handlers) GetSignedImageURL(c *gin.Context) {
	p, err := h.Catalog.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	signed, err := services.GenerateSignedURL(c.Request.Context(), p.Image, 24*time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération URL signée"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": signed})
}

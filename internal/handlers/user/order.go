package user

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"tienda_back_end/internal/database"
	"tienda_back_end/internal/models"
)

// GetMyOrders récupère les commandes de l'utilisateur connecté,
// les plus récentes d'abord
func GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT order_id, stripe_session_id, subtotal, shipping, total, status, items_json, created_at
		FROM orders_by_user WHERE user_id = ?`, userID).
		WithContext(c.Request.Context()).Iter()

	var orders []models.Order
	var (
		orderID   gocql.UUID
		order     models.Order
		itemsJSON string
	)

	for iter.Scan(&orderID, &order.StripeSessionID, &order.Subtotal, &order.Shipping,
		&order.Total, &order.Status, &itemsJSON, &order.CreatedAt) {
		order.ID = orderID
		order.UserID = userID
		if err := json.Unmarshal([]byte(itemsJSON), &order.Items); err != nil {
			log.Printf("⚠️ Erreur décodage items commande %s: %v", orderID, err)
			order.Items = nil
		}
		orders = append(orders, order)
		order = models.Order{}
		itemsJSON = ""
	}

	if err := iter.Close(); err != nil {
		log.Println("❌ Erreur lecture commandes:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

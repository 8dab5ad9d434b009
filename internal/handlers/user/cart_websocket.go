package user

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"tienda_back_end/internal/cart"
	"tienda_back_end/internal/database"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Autoriser toutes les origines (à ajuster en production)
		return true
	},
}

// CartWebSocket pousse l'état du panier en temps réel. Chaque mutation du
// RedisStore publie sur cart:<userID>, ici on relaie au client connecté.
func (h *CartHandlers) CartWebSocket(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()

	pubsub := database.Redis.Subscribe(ctx, "cart:"+userID)
	defer pubsub.Close()
	ch := pubsub.Channel()

	conn.WriteJSON(map[string]interface{}{
		"type":    "connected",
		"message": "Synchronisation panier activée",
	})

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if msg.Payload != "updated" && msg.Payload != "cleared" {
				continue
			}

			items, err := h.Store.Load(ctx, userID)
			if err != nil {
				continue
			}

			summary := cart.Summarize(cart.Subtotal(items), h.Pricing)
			if err := conn.WriteJSON(map[string]interface{}{
				"type":    "cart_updated",
				"items":   items,
				"summary": summary,
				"count":   len(items),
			}); err != nil {
				log.Printf("🔌 WebSocket fermé pour %s: %v", userID, err)
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

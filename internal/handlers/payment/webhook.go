package payment

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/webhook"

	"tienda_back_end/internal/cart"
	"tienda_back_end/internal/config"
	"tienda_back_end/internal/database"
	"tienda_back_end/internal/models"
	"tienda_back_end/internal/utils"
)

// StripeWebhook traite les événements Stripe signés
//
// 📥 POST /api/stripe/webhook
func (h *Handlers) StripeWebhook(c *gin.Context) {
	const MaxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)

	payload, err := c.GetRawData()
	if err != nil {
		log.Println("❌ Lecture payload échouée:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Échec lecture body"})
		return
	}

	secret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	var event stripe.Event

	if secret == "" {
		log.Println("⚠️ Pas de STRIPE_WEBHOOK_SECRET — mode test")
		if err := json.Unmarshal(payload, &event); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "JSON invalide"})
			return
		}
	} else {
		event, err = webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), secret)
		if err != nil {
			log.Println("❌ Signature Stripe invalide:", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Signature invalide"})
			return
		}
	}

	log.Printf("📥 Événement Stripe reçu : %s", event.Type)
	h.handleStripeEvent(event)

	c.Status(http.StatusOK)
}

func (h *Handlers) handleStripeEvent(event stripe.Event) {
	if event.Type != "checkout.session.completed" {
		log.Printf("ℹ️ Événement ignoré : %s", event.Type)
		return
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		log.Println("❌ Erreur décodage CheckoutSession:", err)
		return
	}
	log.Printf("🧠 Session complétée : %s", sess.ID)

	userID := sess.Metadata["user_id"]
	userEmail := sess.Metadata["email"]
	if userID == "" {
		log.Println("⚠️ Métadonnées incomplètes, session ignorée")
		return
	}

	ctx := context.Background()

	// Le panier au moment du paiement
	items, err := h.Cart.Load(ctx, userID)
	if err != nil {
		log.Println("❌ Erreur lecture panier:", err)
		items = nil
	}
	log.Printf("🛒 Articles dans le panier : %d", len(items))

	// Paiement confirmé : le panier est vidé inconditionnellement, même si
	// l'enregistrement de la commande échoue ensuite
	if err := h.Cart.Clear(ctx, userID); err != nil {
		log.Println("⚠️ Erreur vidage panier:", err)
	} else {
		log.Printf("🧹 Panier supprimé pour %s", userID)
	}

	summary := cart.Summarize(cart.Subtotal(items), config.Pricing())

	order := models.Order{
		ID:              gocql.TimeUUID(),
		UserID:          userID,
		StripeSessionID: sess.ID,
		Subtotal:        summary.Subtotal,
		Shipping:        summary.Shipping,
		Total:           summary.Total,
		Status:          "paid",
		CreatedAt:       time.Now(),
	}
	for _, item := range items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.EffectivePrice(),
			Quantity:  item.Quantity,
		})
	}

	if !h.recordOrder(order) {
		return
	}

	if userEmail == "" {
		return
	}

	qr, err := utils.GenerateOrderQR(order.ID.String())
	if err != nil {
		log.Println("⚠️ Erreur génération QR:", err)
	}
	html := utils.GenerateOrderConfirmationHTML(order, qr)

	var pdf []byte
	if receiptURL := os.Getenv("RECEIPT_URL"); receiptURL != "" {
		pdf, err = utils.RenderReceiptPDF(receiptURL, order.ID.String())
		if err != nil {
			log.Println("❌ Erreur génération PDF :", err)
			pdf = nil
		}
	}

	go func() {
		if err := utils.SendOrderConfirmationEmail(userEmail, "Confirmación de tu pedido", html, pdf); err != nil {
			log.Println("❌ Erreur envoi e-mail confirmation :", err)
		} else {
			log.Println("📧 E-mail de confirmation envoyé à", userEmail)
		}
	}()
}

// recordOrder insère la commande, une seule fois par session Stripe.
// Retourne false si la commande n'a pas été enregistrée (doublon ou erreur).
func (h *Handlers) recordOrder(order models.Order) bool {
	ordersSession, err := database.GetOrdersSession()
	if err != nil {
		log.Println("❌ Erreur connexion orders:", err)
		return false
	}

	var existing gocql.UUID
	if err := ordersSession.Query(`SELECT order_id FROM orders_by_session WHERE stripe_session_id = ?`, order.StripeSessionID).
		Scan(&existing); err == nil {
		log.Println("🔁 Commande déjà enregistrée, on ignore.")
		return false
	}

	itemsJSON, _ := json.Marshal(order.Items)

	if err := ordersSession.Query(`INSERT INTO orders_by_user (user_id, order_id, stripe_session_id, subtotal, shipping, total, status, items_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.UserID, order.ID, order.StripeSessionID, order.Subtotal, order.Shipping,
		order.Total, order.Status, string(itemsJSON), order.CreatedAt).Exec(); err != nil {
		log.Println("❌ Erreur insertion commande:", err)
		return false
	}
	if err := ordersSession.Query(`INSERT INTO orders_by_session (stripe_session_id, order_id) VALUES (?, ?)`,
		order.StripeSessionID, order.ID).Exec(); err != nil {
		log.Println("⚠️ Erreur indexation orders_by_session:", err)
	}
	log.Printf("✅ Commande enregistrée : %s", order.ID)
	return true
}

package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Order struct {
	ID              gocql.UUID  `json:"id"`
	UserID          string      `json:"user_id"`
	StripeSessionID string      `json:"stripe_session_id"`
	Subtotal        float64     `json:"subtotal"`
	Shipping        float64     `json:"shipping"`
	Total           float64     `json:"total"`
	Status          string      `json:"status"`
	Items           []OrderItem `json:"items"`
	CreatedAt       time.Time   `json:"created_at"`
}

type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"` // prix unitaire effectif au moment de l'achat
	Quantity  int     `json:"quantity"`
}

// OrderSummary est la décomposition du panier affichée avant paiement
type OrderSummary struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

package cart

import (
	"tienda_back_end/internal/config"
	"tienda_back_end/internal/models"
)

// Summarize dérive le résumé de commande à partir du sous-total :
// livraison offerte strictement au-dessus du seuil, sinon frais fixes.
// À 50.00 pile les frais s'appliquent encore, à 50.01 c'est offert.
func Summarize(subtotal float64, cfg config.PricingConfig) models.OrderSummary {
	shipping := cfg.FlatShippingFee
	if subtotal > cfg.FreeShippingThreshold {
		shipping = 0
	}

	return models.OrderSummary{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal + shipping,
	}
}

package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tienda_back_end/internal/config"
)

var testPricing = config.PricingConfig{
	FreeShippingThreshold: 50.00,
	FlatShippingFee:       4.99,
	Currency:              "usd",
}

func TestSummarize_BelowThreshold(t *testing.T) {
	sum := Summarize(30.00, testPricing)

	assert.Equal(t, 30.00, sum.Subtotal)
	assert.Equal(t, 4.99, sum.Shipping)
	assert.InDelta(t, 34.99, sum.Total, 1e-9)
}

func TestSummarize_ExactlyAtThresholdStillPays(t *testing.T) {
	// Le seuil est strict : à 50.00 pile les frais s'appliquent encore
	sum := Summarize(50.00, testPricing)

	assert.Equal(t, 4.99, sum.Shipping)
	assert.InDelta(t, 54.99, sum.Total, 1e-9)
}

func TestSummarize_JustAboveThresholdIsFree(t *testing.T) {
	sum := Summarize(50.01, testPricing)

	assert.Equal(t, 0.0, sum.Shipping)
	assert.InDelta(t, 50.01, sum.Total, 1e-9)
}

func TestSummarize_EmptyCart(t *testing.T) {
	// Panier vide : le résumé reste défini, frais fixes compris
	sum := Summarize(0, testPricing)

	assert.Equal(t, 0.0, sum.Subtotal)
	assert.Equal(t, 4.99, sum.Shipping)
	assert.Equal(t, 4.99, sum.Total)
}

func TestSummarize_TotalIsSubtotalPlusShipping(t *testing.T) {
	for _, subtotal := range []float64{0.01, 12.34, 49.99, 50.00, 50.01, 120.50} {
		sum := Summarize(subtotal, testPricing)
		assert.InDelta(t, sum.Subtotal+sum.Shipping, sum.Total, 1e-9)
	}
}

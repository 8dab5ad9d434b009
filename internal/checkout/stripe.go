package checkout

import (
	"context"
	"errors"
	"log"

	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/checkout/session"
)

// StripeSessionCreator crée des Stripe Checkout Sessions (mode payment,
// carte, collecte d'adresse de livraison US/CA/MX/ES).
type StripeSessionCreator struct{}

func NewStripeSessionCreator() *StripeSessionCreator {
	return &StripeSessionCreator{}
}

func (s *StripeSessionCreator) CreateSession(ctx context.Context, req Request) (*Session, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.LineItems))
	for _, li := range req.LineItems {
		var images []*string
		if li.ImageURL != "" {
			images = stripe.StringSlice([]string{li.ImageURL})
		}

		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(li.Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String(li.Name),
					Description: stripe.String(li.Description),
					Images:      images,
				},
				UnitAmount: stripe.Int64(li.UnitAmount),
			},
			Quantity: stripe.Int64(li.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:          lineItems,
		SuccessURL:         stripe.String(req.SuccessURL),
		CancelURL:          stripe.String(req.CancelURL),
		ShippingAddressCollection: &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice([]string{"US", "CA", "MX", "ES"}),
		},
		Metadata: map[string]string{
			"user_id": req.UserID,
			"email":   req.Email,
		},
	}
	params.Context = ctx

	sess, err := session.New(params)
	if err != nil {
		log.Printf("❌ Erreur Stripe: %v", err)
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
			return nil, errors.New(stripeErr.Msg)
		}
		return nil, err
	}

	log.Printf("💳 Session checkout créée: %s", sess.ID)
	return &Session{ID: sess.ID, URL: sess.URL}, nil
}

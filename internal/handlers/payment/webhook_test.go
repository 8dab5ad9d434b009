package payment

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v83"

	"tienda_back_end/internal/models"
)

// fakeCartStore remplace le panier Redis : lignes en dur, trace des appels
type fakeCartStore struct {
	items   []models.CartItem
	loadErr error
	cleared []string
}

func (f *fakeCartStore) Load(_ context.Context, _ string) ([]models.CartItem, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.items, nil
}

func (f *fakeCartStore) Clear(_ context.Context, userID string) error {
	f.cleared = append(f.cleared, userID)
	return nil
}

func completedSessionEvent(t *testing.T, sessionID, userID, email string) stripe.Event {
	t.Helper()
	raw, err := json.Marshal(map[string]interface{}{
		"id": sessionID,
		"metadata": map[string]string{
			"user_id": userID,
			"email":   email,
		},
	})
	require.NoError(t, err)
	return stripe.Event{
		Type: "checkout.session.completed",
		Data: &stripe.EventData{Raw: raw},
	}
}

func TestHandleStripeEvent_ClearsCartWhenOrderInsertFails(t *testing.T) {
	// Sans keyspace orders configuré, l'enregistrement de la commande
	// échoue ; le panier doit quand même être vidé
	t.Setenv("SCYLLA_KS_ORDERS_KEYSPACE", "")

	fake := &fakeCartStore{items: []models.CartItem{
		{ProductID: "1", Name: "Auriculares", Price: 89.99, Discount: 69.99, Quantity: 1},
	}}
	h := &Handlers{Cart: fake}

	h.handleStripeEvent(completedSessionEvent(t, "cs_test_abc", "user-1", ""))

	require.Len(t, fake.cleared, 1, "payment success must always clear the cart")
	assert.Equal(t, "user-1", fake.cleared[0])
}

func TestHandleStripeEvent_ClearsCartWhenLoadFails(t *testing.T) {
	t.Setenv("SCYLLA_KS_ORDERS_KEYSPACE", "")

	fake := &fakeCartStore{loadErr: errors.New("redis indisponible")}
	h := &Handlers{Cart: fake}

	h.handleStripeEvent(completedSessionEvent(t, "cs_test_def", "user-2", ""))

	require.Len(t, fake.cleared, 1)
	assert.Equal(t, "user-2", fake.cleared[0])
}

func TestHandleStripeEvent_IgnoresOtherEventTypes(t *testing.T) {
	fake := &fakeCartStore{}
	h := &Handlers{Cart: fake}

	h.handleStripeEvent(stripe.Event{Type: "payment_intent.created", Data: &stripe.EventData{Raw: []byte(`{}`)}})

	assert.Empty(t, fake.cleared)
}

func TestHandleStripeEvent_MissingUserID(t *testing.T) {
	fake := &fakeCartStore{}
	h := &Handlers{Cart: fake}

	h.handleStripeEvent(completedSessionEvent(t, "cs_test_ghi", "", ""))

	assert.Empty(t, fake.cleared, "session without metadata must not touch any cart")
}

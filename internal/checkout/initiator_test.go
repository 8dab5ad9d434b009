package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tienda_back_end/internal/models"
)

// fakeCreator enregistre les requêtes et rend une session (ou une erreur)
// programmable, sans toucher au réseau
type fakeCreator struct {
	mu      sync.Mutex
	calls   int
	lastReq Request
	session *Session
	err     error
	blockCh chan struct{} // si non nil, CreateSession bloque jusqu'à fermeture
	enterCh chan struct{} // signale l'entrée dans CreateSession
}

func (f *fakeCreator) CreateSession(ctx context.Context, req Request) (*Session, error) {
	f.mu.Lock()
	f.calls++
	f.lastReq = req
	f.mu.Unlock()

	if f.enterCh != nil {
		close(f.enterCh)
	}
	if f.blockCh != nil {
		<-f.blockCh
	}
	return f.session, f.err
}

func (f *fakeCreator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testItems() []models.CartItem {
	return []models.CartItem{
		{ProductID: "1", Name: "Auriculares", Description: "Auriculares inalámbricos premium", Price: 89.99, Discount: 69.99, Quantity: 2},
		{ProductID: "2", Name: "Botella", Price: 24.99, Quantity: 1},
	}
}

func TestInitiate_Success(t *testing.T) {
	creator := &fakeCreator{session: &Session{ID: "cs_test_123", URL: "https://checkout.stripe.com/pay/cs_test_123"}}
	in := NewInitiator(creator, "usd")

	session, err := in.Initiate(context.Background(), testItems(), "https://shop/success", "https://shop/cancel", "user-1", "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "cs_test_123", session.ID)
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_test_123", session.URL)
	assert.Equal(t, StateRedirecting, in.State())
}

func TestInitiate_EmptyCart_NoProviderCall(t *testing.T) {
	creator := &fakeCreator{session: &Session{ID: "x", URL: "https://x"}}
	in := NewInitiator(creator, "usd")

	_, err := in.Initiate(context.Background(), nil, "https://shop/success", "https://shop/cancel", "user-1", "")
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, 0, creator.callCount(), "validation must reject before any provider call")
	assert.Equal(t, StateIdle, in.State())
}

func TestInitiate_MissingURLs_NoProviderCall(t *testing.T) {
	creator := &fakeCreator{session: &Session{ID: "x", URL: "https://x"}}
	in := NewInitiator(creator, "usd")

	_, err := in.Initiate(context.Background(), testItems(), "", "https://shop/cancel", "user-1", "")
	assert.ErrorIs(t, err, ErrMissingURLs)

	_, err = in.Initiate(context.Background(), testItems(), "https://shop/success", "", "user-1", "")
	assert.ErrorIs(t, err, ErrMissingURLs)

	assert.Equal(t, 0, creator.callCount())
}

func TestInitiate_BuildsLineItemsFromCart(t *testing.T) {
	creator := &fakeCreator{session: &Session{ID: "cs", URL: "https://u"}}
	in := NewInitiator(creator, "usd")

	_, err := in.Initiate(context.Background(), testItems(), "https://s", "https://c", "user-1", "a@b.com")
	require.NoError(t, err)

	req := creator.lastReq
	require.Len(t, req.LineItems, 2)

	// Ligne remisée : le prix effectif part en centimes
	assert.Equal(t, int64(6999), req.LineItems[0].UnitAmount)
	assert.Equal(t, int64(2), req.LineItems[0].Quantity)
	assert.Equal(t, "usd", req.LineItems[0].Currency)
	assert.Equal(t, "Auriculares inalámbricos premium", req.LineItems[0].Description)

	// Ligne plein tarif, sans description produit
	assert.Equal(t, int64(2499), req.LineItems[1].UnitAmount)
	assert.Equal(t, int64(1), req.LineItems[1].Quantity)
	assert.Equal(t, "", req.LineItems[1].Description)

	assert.Equal(t, "user-1", req.UserID)
	assert.Equal(t, "a@b.com", req.Email)
	assert.Equal(t, "https://s", req.SuccessURL)
	assert.Equal(t, "https://c", req.CancelURL)
}

func TestInitiate_ProviderError_SurfacesMessage(t *testing.T) {
	providerErr := errors.New("Your card was declined")
	creator := &fakeCreator{err: providerErr}
	in := NewInitiator(creator, "usd")

	_, err := in.Initiate(context.Background(), testItems(), "https://s", "https://c", "user-1", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, providerErr)
	assert.Contains(t, err.Error(), "Your card was declined")
	assert.Equal(t, StateFailed, in.State())
	assert.ErrorIs(t, in.LastError(), providerErr)
}

func TestInitiate_FailedThenRetrySucceeds(t *testing.T) {
	creator := &fakeCreator{err: errors.New("boom")}
	in := NewInitiator(creator, "usd")

	_, err := in.Initiate(context.Background(), testItems(), "https://s", "https://c", "user-1", "")
	require.Error(t, err)
	require.Equal(t, StateFailed, in.State())

	// Nouvelle tentative indépendante une fois le provider rétabli
	creator.err = nil
	creator.session = &Session{ID: "cs2", URL: "https://u2"}

	session, err := in.Initiate(context.Background(), testItems(), "https://s", "https://c", "user-1", "")
	require.NoError(t, err)
	assert.Equal(t, "cs2", session.ID)
	assert.Equal(t, StateRedirecting, in.State())
	assert.NoError(t, in.LastError())
}

func TestInitiate_MissingRedirectURL(t *testing.T) {
	creator := &fakeCreator{session: &Session{ID: "cs", URL: ""}}
	in := NewInitiator(creator, "usd")

	_, err := in.Initiate(context.Background(), testItems(), "https://s", "https://c", "user-1", "")
	assert.ErrorIs(t, err, ErrNoURL)
	assert.Equal(t, StateFailed, in.State())
}

func TestInitiate_RejectsConcurrentSubmission(t *testing.T) {
	creator := &fakeCreator{
		session: &Session{ID: "cs", URL: "https://u"},
		blockCh: make(chan struct{}),
		enterCh: make(chan struct{}),
	}
	in := NewInitiator(creator, "usd")

	done := make(chan error, 1)
	go func() {
		_, err := in.Initiate(context.Background(), testItems(), "https://s", "https://c", "user-1", "")
		done <- err
	}()

	<-creator.enterCh
	assert.Equal(t, StateSubmitting, in.State())

	// Deuxième soumission pendant que la première est en vol
	_, err := in.Initiate(context.Background(), testItems(), "https://s", "https://c", "user-1", "")
	assert.ErrorIs(t, err, ErrInFlight)

	close(creator.blockCh)
	require.NoError(t, <-done)
	assert.Equal(t, 1, creator.callCount())
}

func TestReset_ReturnsToIdle(t *testing.T) {
	creator := &fakeCreator{session: &Session{ID: "cs", URL: "https://u"}}
	in := NewInitiator(creator, "usd")

	_, err := in.Initiate(context.Background(), testItems(), "https://s", "https://c", "user-1", "")
	require.NoError(t, err)
	require.Equal(t, StateRedirecting, in.State())

	in.Reset()
	assert.Equal(t, StateIdle, in.State())
	assert.NoError(t, in.LastError())
}

func TestToMinorUnits_Rounding(t *testing.T) {
	assert.Equal(t, int64(6999), ToMinorUnits(69.99))
	assert.Equal(t, int64(2999), ToMinorUnits(29.99))
	assert.Equal(t, int64(5000), ToMinorUnits(50.00))
	// Le bruit flottant s'arrondit au centime : 0.1+0.2 → 30 centimes
	assert.Equal(t, int64(30), ToMinorUnits(0.1+0.2))
	assert.Equal(t, int64(0), ToMinorUnits(0))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "submitting", StateSubmitting.String())
	assert.Equal(t, "redirecting", StateRedirecting.String())
	assert.Equal(t, "failed", StateFailed.String())
}

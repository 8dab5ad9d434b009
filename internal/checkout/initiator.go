package checkout

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"tienda_back_end/internal/models"
)

// État du checkout : Idle → Submitting → {Redirecting | Failed}.
// Failed retombe sur Idle, l'erreur est remontée à l'appelant. Pas de retry.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateRedirecting
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateRedirecting:
		return "redirecting"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

var (
	ErrEmptyCart   = errors.New("le panier est vide")
	ErrMissingURLs = errors.New("successUrl et cancelUrl sont obligatoires")
	ErrInFlight    = errors.New("un paiement est déjà en cours")
	ErrNoURL       = errors.New("le provider n'a pas renvoyé d'URL de redirection")
)

// LineItem est une ligne de la session de paiement : montant unitaire en
// centimes (arrondi), une ligne par ligne de panier.
type LineItem struct {
	Currency    string
	Name        string
	Description string
	ImageURL    string
	UnitAmount  int64
	Quantity    int64
}

// Request est la requête envoyée au provider de paiement
type Request struct {
	LineItems  []LineItem
	SuccessURL string
	CancelURL  string
	UserID     string
	Email      string
}

// Session est la session de paiement renvoyée par le provider :
// une URL de redirection à usage unique.
type Session struct {
	ID  string
	URL string
}

// SessionCreator est le provider de paiement externe
type SessionCreator interface {
	CreateSession(ctx context.Context, req Request) (*Session, error)
}

// Initiator assemble la requête de paiement depuis le panier et la soumet
// au provider. Une seule soumission en vol à la fois.
type Initiator struct {
	creator  SessionCreator
	currency string

	mu       sync.Mutex
	state    State
	inFlight bool
	lastErr  error
}

func NewInitiator(creator SessionCreator, currency string) *Initiator {
	if currency == "" {
		currency = "usd"
	}
	return &Initiator{creator: creator, currency: currency, state: StateIdle}
}

// State retourne l'état courant du checkout
func (in *Initiator) State() State {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.state
}

// LastError retourne l'erreur de la dernière tentative échouée
func (in *Initiator) LastError() error {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.lastErr
}

// BuildLineItems convertit les lignes du panier en lignes de paiement :
// prix effectif arrondi en centimes, une ligne par produit.
func BuildLineItems(items []models.CartItem, currency string) []LineItem {
	lines := make([]LineItem, 0, len(items))
	for _, item := range items {
		lines = append(lines, LineItem{
			Currency:    currency,
			Name:        item.Name,
			Description: item.Description,
			ImageURL:    item.ImageURL,
			UnitAmount:  ToMinorUnits(item.EffectivePrice()),
			Quantity:    int64(item.Quantity),
		})
	}
	return lines
}

// ToMinorUnits convertit un prix décimal en centimes entiers arrondis
func ToMinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// Initiate valide le panier et les URLs, puis crée la session de paiement.
// Les erreurs de validation partent avant tout appel réseau. En cas d'échec
// du provider, son message est conservé tel quel dans l'erreur.
func (in *Initiator) Initiate(ctx context.Context, items []models.CartItem, successURL, cancelURL, userID, email string) (*Session, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	if successURL == "" || cancelURL == "" {
		return nil, ErrMissingURLs
	}

	in.mu.Lock()
	if in.inFlight {
		in.mu.Unlock()
		return nil, ErrInFlight
	}
	in.inFlight = true
	in.state = StateSubmitting
	in.lastErr = nil
	in.mu.Unlock()

	session, err := in.creator.CreateSession(ctx, Request{
		LineItems:  BuildLineItems(items, in.currency),
		SuccessURL: successURL,
		CancelURL:  cancelURL,
		UserID:     userID,
		Email:      email,
	})

	in.mu.Lock()
	defer in.mu.Unlock()
	in.inFlight = false

	if err != nil {
		// Failed : l'erreur est surfacée, la prochaine tentative repart de zéro
		in.state = StateFailed
		in.lastErr = fmt.Errorf("création de la session de paiement: %w", err)
		return nil, in.lastErr
	}

	if session == nil || session.URL == "" {
		in.state = StateFailed
		in.lastErr = ErrNoURL
		return nil, ErrNoURL
	}

	in.state = StateRedirecting
	return session, nil
}

// Reset ramène l'initiateur sur Idle une fois l'utilisateur redirigé
func (in *Initiator) Reset() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.state = StateIdle
	in.lastErr = nil
}

package cart

import (
	"sync"

	"tienda_back_end/internal/models"
)

// Store est le panier en mémoire : une ligne par produit, dans l'ordre
// d'ajout. Toutes les mutations sont atomiques (mutex interne), le store
// se passe par référence aux consommateurs plutôt qu'en global.
type Store struct {
	mu    sync.Mutex
	lines []models.CartItem
}

func NewStore() *Store {
	return &Store{}
}

// Add ajoute un produit au panier. Si le produit y est déjà, la quantité
// est incrémentée de 1 — sans vérification du stock restant à ce niveau,
// c'est le checkout qui revalide le stock avant paiement.
func (s *Store) Add(p models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == p.ID {
			s.lines[i].Quantity++
			return
		}
	}

	s.lines = append(s.lines, models.CartItem{
		ProductID:   p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Discount:    p.Discount,
		ImageURL:    p.Image,
		Quantity:    1,
	})
}

// UpdateQuantity fixe la quantité d'une ligne. Une quantité < 1 supprime
// la ligne : la quantité zéro n'existe pas, c'est une suppression.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 1 {
		s.removeLocked(productID)
		return
	}

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines[i].Quantity = quantity
			return
		}
	}
}

// Remove supprime une ligne du panier, no-op si le produit n'y est pas
func (s *Store) Remove(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(productID)
}

func (s *Store) removeLocked(productID string) {
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return
		}
	}
}

// Clear vide complètement le panier
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
}

// Subtotal calcule Σ prix effectif × quantité sur toutes les lignes
func (s *Store) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Subtotal(s.lines)
}

// Items retourne une copie des lignes du panier
func (s *Store) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.CartItem, len(s.lines))
	copy(out, s.lines)
	return out
}

// Len retourne le nombre de lignes (pas la somme des quantités)
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// Subtotal calcule le sous-total d'un jeu de lignes quelconque
func Subtotal(items []models.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.EffectivePrice() * float64(item.Quantity)
	}
	return total
}

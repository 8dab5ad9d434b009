package cart

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"tienda_back_end/internal/models"
)

const CartTTL = 30 * 24 * time.Hour // 30 jours

// RedisStore persiste un panier par utilisateur dans Redis, en JSON sous
// cart:<userID>. Chaque mutation publie sur le canal cart:<userID> pour la
// synchro temps réel (websocket). Mêmes invariants que Store : une ligne
// par produit, quantité < 1 = suppression.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func cartKey(userID string) string {
	return "cart:" + userID
}

// Load récupère les lignes du panier, panier vide si la clé n'existe pas
func (s *RedisStore) Load(ctx context.Context, userID string) ([]models.CartItem, error) {
	data, err := s.rdb.Get(ctx, cartKey(userID)).Result()
	if err == redis.Nil || data == "" {
		return []models.CartItem{}, nil
	}
	if err != nil {
		return nil, err
	}

	var items []models.CartItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *RedisStore) save(ctx context.Context, userID string, items []models.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, cartKey(userID), data, CartTTL).Err(); err != nil {
		return err
	}
	s.rdb.Publish(ctx, cartKey(userID), "updated")
	return nil
}

// Add ajoute un produit : ligne existante → quantité +1, sinon nouvelle
// ligne à quantité 1. Le stock n'est pas revalidé ici, voir checkout.
func (s *RedisStore) Add(ctx context.Context, userID string, p models.Product) ([]models.CartItem, error) {
	items, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range items {
		if items[i].ProductID == p.ID {
			items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		items = append(items, models.CartItem{
			ProductID:   p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Discount:    p.Discount,
			ImageURL:    p.Image,
			Quantity:    1,
		})
	}

	return items, s.save(ctx, userID, items)
}

// UpdateQuantity fixe la quantité d'une ligne, quantité < 1 = suppression
func (s *RedisStore) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) ([]models.CartItem, error) {
	items, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if quantity < 1 {
		return s.remove(ctx, userID, productID, items)
	}

	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = quantity
			break
		}
	}

	return items, s.save(ctx, userID, items)
}

// Remove supprime une ligne, no-op si absente
func (s *RedisStore) Remove(ctx context.Context, userID, productID string) ([]models.CartItem, error) {
	items, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.remove(ctx, userID, productID, items)
}

func (s *RedisStore) remove(ctx context.Context, userID, productID string, items []models.CartItem) ([]models.CartItem, error) {
	kept := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	return kept, s.save(ctx, userID, kept)
}

// Clear vide le panier : suppression de la clé plutôt qu'un tableau vide
func (s *RedisStore) Clear(ctx context.Context, userID string) error {
	if err := s.rdb.Del(ctx, cartKey(userID)).Err(); err != nil {
		return err
	}
	s.rdb.Publish(ctx, cartKey(userID), "cleared")
	return nil
}

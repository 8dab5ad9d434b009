package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Product struct {
	ID          string     `json:"id" db:"product_id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	Price       float64    `json:"price" db:"price"`
	Discount    float64    `json:"discount" db:"discount"` // 0 = pas de promo, sinon prix promo < price
	Image       string     `json:"image" db:"image_url"`
	Category    string     `json:"category" db:"category"`
	Rating      float64    `json:"rating" db:"rating"`
	ReviewCount int        `json:"reviewCount" db:"review_count"`
	Stock       int        `json:"stock" db:"stock"`
	CreatedAt   *time.Time `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// EffectivePrice retourne le prix promo si présent, sinon le prix de base
func (p Product) EffectivePrice() float64 {
	if p.Discount > 0 {
		return p.Discount
	}
	return p.Price
}

type Review struct {
	ID        gocql.UUID `json:"id"`
	ProductID string     `json:"product_id"`
	UserID    string     `json:"user_id"`
	Rating    int        `json:"rating"`
	Comment   string     `json:"comment"`
	CreatedAt time.Time  `json:"created_at"`
}

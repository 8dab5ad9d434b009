package models

type Cart struct {
	UserID string     `json:"user_id"`
	Items  []CartItem `json:"items"`
}

type CartItem struct {
	ProductID   string  `json:"product_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Discount    float64 `json:"discount"` // 0 = pas de promo
	ImageURL    string  `json:"image_url"`
	Quantity    int     `json:"quantity"`
}

// EffectivePrice retourne le prix promo si présent, sinon le prix de base
func (i CartItem) EffectivePrice() float64 {
	if i.Discount > 0 {
		return i.Discount
	}
	return i.Price
}

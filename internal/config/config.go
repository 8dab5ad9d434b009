package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func Load() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}
}

// PricingConfig regroupe les constantes de calcul du résumé de commande
type PricingConfig struct {
	FreeShippingThreshold float64
	FlatShippingFee       float64
	Currency              string
}

// Pricing charge la config de pricing depuis l'environnement,
// avec les valeurs par défaut de la boutique (livraison offerte > 50€... en USD ici)
func Pricing() PricingConfig {
	cfg := PricingConfig{
		FreeShippingThreshold: 50.00,
		FlatShippingFee:       4.99,
		Currency:              "usd",
	}

	if v := os.Getenv("FREE_SHIPPING_THRESHOLD"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.FreeShippingThreshold = n
		}
	}
	if v := os.Getenv("FLAT_SHIPPING_FEE"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.FlatShippingFee = n
		}
	}
	if v := os.Getenv("CHECKOUT_CURRENCY"); v != "" {
		cfg.Currency = v
	}

	return cfg
}

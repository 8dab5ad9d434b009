package config

import (
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// GoogleOAuth construit la config OAuth2 Google. Appelé après Load()
// pour que les identifiants du .env soient visibles.
func GoogleOAuth() *oauth2.Config {
	redirectURL := os.Getenv("BASE_URL")
	if redirectURL == "" {
		redirectURL = "http://localhost:8080"
	}

	return &oauth2.Config{
		RedirectURL:  redirectURL + "/api/auth/google/callback",
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

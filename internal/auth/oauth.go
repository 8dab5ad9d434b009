package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

type OAuthProvider struct {
	Name        string
	Config      *oauth2.Config
	UserInfoURL string
}

// GoogleUserInfo est la réponse de l'endpoint userinfo de Google
type GoogleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (p *OAuthProvider) GetAuthURL(state string) string {
	return p.Config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (p *OAuthProvider) Exchange(code string) (*oauth2.Token, error) {
	return p.Config.Exchange(context.Background(), code)
}

// FetchUserInfo récupère le profil du provider avec le token échangé.
// Utilisé en secours quand la session gothic a expiré côté callback.
func (p *OAuthProvider) FetchUserInfo(token *oauth2.Token) (*GoogleUserInfo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client := p.Config.Client(ctx, token)
	resp, err := client.Get(p.UserInfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo %s: statut %d", p.Name, resp.StatusCode)
	}

	var info GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}

package user

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tienda_back_end/internal/auth"
	"tienda_back_end/internal/config"
	"tienda_back_end/internal/database"
	"tienda_back_end/internal/models"
)

func googleProvider() *auth.OAuthProvider {
	return &auth.OAuthProvider{
		Name:        "google",
		Config:      config.GoogleOAuth(),
		UserInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
	}
}

// GoogleCodeExchange échange directement un code d'autorisation Google
// contre nos tokens. Flux sans cookie pour les clients mobiles, là où le
// callback gothic ne fonctionne pas.
//
// 📤 POST /api/auth/google/exchange
func GoogleCodeExchange(c *gin.Context) {
	var input struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code d'autorisation manquant"})
		return
	}

	provider := googleProvider()

	token, err := provider.Exchange(input.Code)
	if err != nil {
		log.Printf("❌ Échange code Google échoué: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Code d'autorisation invalide"})
		return
	}

	info, err := provider.FetchUserInfo(token)
	if err != nil {
		log.Printf("❌ Userinfo Google échoué: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Impossible de récupérer le profil"})
		return
	}

	user, err := findOrCreateProviderAccount("google", info.ID, info.Name, info.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	respondWithTokens(c, http.StatusOK, user)
}

// findOrCreateProviderAccount retrouve le compte lié à ce provider,
// ou le crée à la première connexion
func findOrCreateProviderAccount(provider, providerID, name, email string) (models.User, error) {
	session, err := database.GetUsersSession()
	if err != nil {
		return models.User{}, err
	}

	var user models.User
	err = session.Query(`SELECT user_id, email, name, role FROM users_by_provider WHERE provider = ? AND provider_id = ?`,
		provider, providerID).Scan(&user.ID, &user.Email, &user.Name, &user.Role)
	if err == nil {
		return user, nil
	}

	now := time.Now()
	user = models.User{
		ID:         uuid.NewString(),
		Name:       name,
		Email:      email,
		Role:       "customer",
		Provider:   provider,
		ProviderID: providerID,
	}
	if err := database.GetPreparedInsertUser().
		Bind(user.ID, user.Email, "", user.Name, user.Role, user.Provider, user.ProviderID, now, now).
		Exec(); err != nil {
		return models.User{}, err
	}
	if err := session.Query("INSERT INTO users_by_provider (provider, provider_id, user_id, email, name, role) VALUES (?, ?, ?, ?, ?, ?)",
		provider, user.ProviderID, user.ID, user.Email, user.Name, user.Role).Exec(); err != nil {
		log.Printf("⚠️ Erreur indexation users_by_provider: %v", err)
	}
	log.Printf("✅ Compte %s créé pour %s", provider, user.Email)
	return user, nil
}

package user

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/markbates/goth/gothic"

	"tienda_back_end/internal/cache"
	"tienda_back_end/internal/database"
	"tienda_back_end/internal/models"
	"tienda_back_end/internal/utils"
)

// ================== AUTH LOCALE ==================

func Signup(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// email déjà pris pour un compte local ?
	var existingID string
	if err := database.GetPreparedGetUserByEmail().Bind(input.Email).Scan(&existingID); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Un compte avec cet email existe déjà"})
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	now := time.Now()
	user := models.User{
		ID:       uuid.NewString(),
		Name:     input.Name,
		Email:    input.Email,
		Password: hashed,
		Role:     "customer",
		Provider: "local",
	}

	if err := database.GetPreparedInsertUser().
		Bind(user.ID, user.Email, user.Password, user.Name, user.Role, user.Provider, "", now, now).
		Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}
	if err := session.Query("INSERT INTO users_by_email (email, user_id) VALUES (?, ?)", user.Email, user.ID).Exec(); err != nil {
		log.Printf("⚠️ Erreur indexation users_by_email: %v", err)
	}

	respondWithTokens(c, http.StatusCreated, user)
}

func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var userID string
	if err := database.GetPreparedGetUserByEmail().Bind(input.Email).Scan(&userID); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	var user models.User
	user.ID = userID
	if err := database.GetPreparedGetUserByID().Bind(userID).
		Scan(&user.Email, &user.Password, &user.Name, &user.Role, &user.Provider, &user.ProviderID); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	ok, err := utils.VerifyPassword(input.Password, user.Password)
	if err != nil || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	respondWithTokens(c, http.StatusOK, user)
}

// Me retourne l'utilisateur courant à partir du token
func Me(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	var user models.User
	user.ID = userID
	if err := database.GetPreparedGetUserByID().Bind(userID).
		Scan(&user.Email, &user.Password, &user.Name, &user.Role, &user.Provider, &user.ProviderID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// Logout révoque le token courant et supprime le refresh token
func Logout(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	if tokenID := c.GetString("token_id"); tokenID != "" {
		if err := cache.BlacklistToken(tokenID, utils.AccessTokenTTL); err != nil {
			log.Printf("⚠️ Erreur blacklist token: %v", err)
		}
	}
	if err := cache.DeleteRefreshToken(userID); err != nil {
		log.Printf("⚠️ Erreur suppression refresh token: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Déconnexion réussie"})
}

// RefreshToken échange un refresh token valide contre une nouvelle paire
// de tokens. Le refresh token est tourné à chaque échange.
func RefreshToken(c *gin.Context) {
	var input struct {
		UserID       string `json:"userId" binding:"required"`
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId et refreshToken sont obligatoires"})
		return
	}

	stored, err := cache.GetRefreshToken(input.UserID)
	if err != nil || stored == "" ||
		subtle.ConstantTimeCompare([]byte(stored), []byte(input.RefreshToken)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token invalide"})
		return
	}

	var user models.User
	user.ID = input.UserID
	if err := database.GetPreparedGetUserByID().Bind(user.ID).
		Scan(&user.Email, &user.Password, &user.Name, &user.Role, &user.Provider, &user.ProviderID); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	respondWithTokens(c, http.StatusOK, user)
}

func respondWithTokens(c *gin.Context, status int, user models.User) {
	accessToken, tokenID, err := utils.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	refreshToken, err := utils.GenerateRefreshToken()
	if err == nil {
		if err := cache.StoreRefreshToken(user.ID, refreshToken, 30*24*time.Hour); err != nil {
			log.Printf("⚠️ Erreur stockage refresh token: %v", err)
		}
	}

	log.Printf("✅ Tokens générés - Access: %s pour user: %s", tokenID, user.ID)

	c.JSON(status, gin.H{
		"token":         accessToken,
		"refresh_token": refreshToken,
		"userId":        user.ID,
		"email":         user.Email,
		"name":          user.Name,
		"role":          user.Role,
	})
}

// ================== AUTH SOCIALE (WEB) ==================

func BeginAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aucun provider spécifié"})
		return
	}

	redirectURL := c.Query("redirect_url")
	state := generateRandomState()
	if redirectURL != "" {
		_ = database.Redis.Set(c.Request.Context(), "oauth_redirect:"+state, redirectURL, 10*time.Minute).Err()
	}

	q := c.Request.URL.Query()
	q.Set("provider", provider)
	q.Set("state", state)
	c.Request.URL.RawQuery = q.Encode()

	gothic.BeginAuthHandler(c.Writer, c.Request)
}

func AuthCallback(c *gin.Context) {
	provider := c.Param("provider")

	q := c.Request.URL.Query()
	q.Set("provider", provider)
	c.Request.URL.RawQuery = q.Encode()

	gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		log.Printf("❌ Erreur callback %s: %v", provider, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentification échouée"})
		return
	}

	user, err := findOrCreateProviderAccount(provider, gothUser.UserID, gothUser.Name, gothUser.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	accessToken, _, err := utils.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	// Redirection frontend stockée au BeginAuth, sinon valeur par défaut
	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}
	if state := c.Query("state"); state != "" {
		if stored, err := database.Redis.Get(c.Request.Context(), "oauth_redirect:"+state).Result(); err == nil && stored != "" {
			frontendURL = stored
			database.Redis.Del(c.Request.Context(), "oauth_redirect:"+state)
		}
	}

	c.Redirect(http.StatusTemporaryRedirect,
		frontendURL+"/auth?token="+url.QueryEscape(accessToken))
}

func generateRandomState() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return uuid.NewString()
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

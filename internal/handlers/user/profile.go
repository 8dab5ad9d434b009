package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tienda_back_end/internal/database"
	"tienda_back_end/internal/models"
)

// GetProfile récupère le profil de l'utilisateur connecté
func GetProfile(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	profile := models.Profile{UserID: userID}
	err = session.Query(`SELECT name, email, avatar_url, phone FROM profiles WHERE user_id = ?`, userID).
		Scan(&profile.Name, &profile.Email, &profile.AvatarURL, &profile.Phone)
	if err != nil {
		// Pas encore de profil dédié : on retombe sur la fiche utilisateur
		if err := database.GetPreparedGetUserByID().Bind(userID).
			Scan(&profile.Email, new(string), &profile.Name, new(string), new(string), new(string)); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profil introuvable"})
			return
		}
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile met à jour le profil de l'utilisateur connecté
func UpdateProfile(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	var input struct {
		Name      string `json:"name"`
		AvatarURL string `json:"avatar_url"`
		Phone     string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	email := c.GetString("email")
	if err := session.Query(`INSERT INTO profiles (user_id, name, email, avatar_url, phone) VALUES (?, ?, ?, ?, ?)`,
		userID, input.Name, email, input.AvatarURL, input.Phone).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour profil"})
		return
	}

	c.JSON(http.StatusOK, models.Profile{
		UserID:    userID,
		Name:      input.Name,
		Email:     email,
		AvatarURL: input.AvatarURL,
		Phone:     input.Phone,
	})
}

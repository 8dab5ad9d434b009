package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tienda_back_end/internal/cache"
	"tienda_back_end/internal/database"
)

const (
	LoginMaxAttempts  = 5
	SignupMaxAttempts = 3

	LoginCooldown  = 15 * time.Minute
	SignupCooldown = 30 * time.Minute
)

// LoginRateLimit limite les tentatives de connexion par email
func LoginRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		bodyBytes, _ := io.ReadAll(c.Request.Body)

		var input struct {
			Email string `json:"email"`
		}
		if err := json.Unmarshal(bodyBytes, &input); err != nil || input.Email == "" {
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
			c.Next()
			return
		}

		// Remettre le body pour les handlers suivants
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		ctx := context.Background()
		key := "login_attempts:" + input.Email
		cooldownKey := "login_cooldown:" + input.Email

		if database.Redis.Exists(ctx, cooldownKey).Val() > 0 {
			ttl := database.Redis.TTL(ctx, cooldownKey).Val()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Trop de tentatives échouées. Réessayez dans %d minutes", int(ttl.Minutes())),
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		attempts, _ := database.Redis.Get(ctx, key).Int()
		if attempts >= LoginMaxAttempts {
			database.Redis.Set(ctx, cooldownKey, "1", LoginCooldown)
			database.Redis.Del(ctx, key)
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Trop de tentatives échouées, compte temporairement bloqué",
			})
			c.Abort()
			return
		}

		c.Next()

		// Seuls les échecs comptent
		if c.Writer.Status() == http.StatusUnauthorized {
			if _, err := cache.IncrementRateLimit(key, LoginCooldown); err != nil {
				log.Printf("⚠️ Erreur compteur rate limit: %v", err)
			}
		} else if c.Writer.Status() == http.StatusOK {
			database.Redis.Del(ctx, key)
		}
	}
}

// SignupRateLimit limite les créations de compte par IP
func SignupRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		key := "signup_attempts:" + c.ClientIP()

		attempts, _ := database.Redis.Get(ctx, key).Int()
		if attempts >= SignupMaxAttempts {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Trop de créations de compte, réessayez plus tard",
			})
			c.Abort()
			return
		}

		if _, err := cache.IncrementRateLimit(key, SignupCooldown); err != nil {
			log.Printf("⚠️ Erreur compteur rate limit: %v", err)
		}
		c.Next()
	}
}

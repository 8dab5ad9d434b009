package routes

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tienda_back_end/internal/handlers/payment"
	"tienda_back_end/internal/handlers/product"
	"tienda_back_end/internal/handlers/user"
	"tienda_back_end/internal/middleware"
)

// Deps regroupe les handlers à brancher sur le routeur
type Deps struct {
	Products *product.Handlers
	Cart     *user.CartHandlers
	Payment  *payment.Handlers
}

func RegisterRoutes(r *gin.Engine, deps Deps) {
	r.Use(corsMiddleware())

	api := r.Group("/api")

	// Produits — lecture publique
	api.GET("/products", deps.Products.GetAllProducts)
	api.GET("/products/search", deps.Products.SearchProducts)
	api.GET("/products/discounted", deps.Products.GetDiscountedProducts)
	api.GET("/products/category/:category", deps.Products.GetProductsByCategory)
	api.GET("/products/:id", deps.Products.GetProductByID)
	api.GET("/products/:id/reviews", deps.Products.GetReviews)
	api.GET("/products/:id/image-url", deps.Products.GetSignedImageURL)

	// Auth
	api.POST("/auth/signup", middleware.SignupRateLimit(), user.Signup)
	api.POST("/auth/login", middleware.LoginRateLimit(), user.Login)
	api.POST("/auth/refresh", user.RefreshToken)
	api.POST("/auth/google/exchange", user.GoogleCodeExchange)
	api.GET("/auth/:provider", user.BeginAuth)
	api.GET("/auth/:provider/callback", user.AuthCallback)

	// Webhook Stripe — signé, pas de JWT
	api.POST("/stripe/webhook", deps.Payment.StripeWebhook)

	// Routes protégées
	protected := api.Group("/")
	protected.Use(middleware.AuthRequired())
	{
		protected.GET("/auth/me", user.Me)
		protected.POST("/auth/logout", user.Logout)
		protected.GET("/profile", user.GetProfile)
		protected.PUT("/profile", user.UpdateProfile)

		protected.GET("/cart", deps.Cart.GetCart)
		protected.POST("/cart/add", deps.Cart.AddToCart)
		protected.PUT("/cart/quantity", deps.Cart.UpdateQuantity)
		protected.DELETE("/cart/:productId", deps.Cart.RemoveFromCart)
		protected.DELETE("/cart", deps.Cart.ClearCart)
		protected.GET("/cart/summary", deps.Cart.GetSummary)
		protected.GET("/cart/ws", deps.Cart.CartWebSocket)

		protected.POST("/checkout", deps.Payment.CreateCheckout)
		protected.GET("/orders", user.GetMyOrders)

		protected.POST("/products/:id/reviews", deps.Products.AddReview)
		protected.POST("/products/:id/image", deps.Products.UploadImage)
	}
}

func corsMiddleware() gin.HandlerFunc {
	origins := []string{"http://localhost:5173", "http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	})
}

package routes

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Shjra/Shjra-Maps/internal/config"
	"github.com/Shjra/Shjra-Maps/internal/handlers"
	"github.com/Shjra/Shjra-Maps/internal/handlers/product"
	"github.com/Shjra/Shjra-Maps/internal/middleware"
)

func RegisterRoutes(r *gin.Engine, cfg config.Config, authHandler *handlers.AuthHandler, productHandler *product.Handler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{siteOrigin(cfg)},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Auth
	r.GET("/auth/discord", authHandler.DiscordLogin)
	r.GET("/auth/discord/callback", authHandler.DiscordCallback)
	r.GET("/api/user", authHandler.GetCurrentUser)

	// Catalogue public
	r.GET("/api/products", productHandler.GetAllProducts)
	r.GET("/api/products/filters", productHandler.GetProductFilters)
	r.GET("/api/products/search", middleware.SearchRateLimit(), productHandler.SearchProducts)

	// Mutations admin
	admin := r.Group("/api/products",
		middleware.AuthRequired(cfg.JWTSecret),
		middleware.RequireAdmin(cfg.AdminID),
	)
	admin.POST("", productHandler.CreateProduct)
	admin.PUT("/:id", productHandler.UpdateProduct)
	admin.DELETE("/:id", productHandler.DeleteProduct)
}

// siteOrigin dérive l'origine du site depuis l'URI de callback OAuth
func siteOrigin(cfg config.Config) string {
	if idx := strings.Index(cfg.DiscordRedirectURI, "/auth"); idx > 0 {
		return cfg.DiscordRedirectURI[:idx]
	}
	return "http://localhost:3000"
}

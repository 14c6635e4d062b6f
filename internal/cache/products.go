// Package cache met la liste complète des produits en cache Redis pour
// encaisser le polling du client. Tolérant à l'absence de Redis.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Shjra/Shjra-Maps/internal/database"
	"github.com/Shjra/Shjra-Maps/internal/models"
)

const (
	productsKey     = "products:all"
	ProductCacheTTL = time.Hour
)

// GetProducts retourne la liste en cache, ou false si absente/invalide
func GetProducts(ctx context.Context) ([]models.Product, bool) {
	if database.Redis == nil {
		return nil, false
	}

	val, err := database.Redis.Get(ctx, productsKey).Result()
	if err != nil || val == "" {
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal([]byte(val), &products); err != nil {
		return nil, false
	}
	return products, true
}

// SetProducts met la liste en cache (best-effort)
func SetProducts(ctx context.Context, products []models.Product) {
	if database.Redis == nil {
		return
	}
	if data, err := json.Marshal(products); err == nil {
		database.Redis.Set(ctx, productsKey, data, ProductCacheTTL)
	}
}

// InvalidateProducts invalide le cache après chaque mutation admin
func InvalidateProducts(ctx context.Context) {
	if database.Redis == nil {
		return
	}
	database.Redis.Del(ctx, productsKey)
}

package product

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/bwmarrin/snowflake"

	"github.com/Shjra/Shjra-Maps/internal/cache"
	"github.com/Shjra/Shjra-Maps/internal/models"
	"github.com/Shjra/Shjra-Maps/internal/store"
	"github.com/Shjra/Shjra-Maps/internal/utils"
)

type Handler struct {
	Store  store.ProductStore
	Audit  *utils.WebhookNotifier
	IDNode *snowflake.Node
}

func NewHandler(s store.ProductStore, audit *utils.WebhookNotifier, idNode *snowflake.Node) *Handler {
	return &Handler{Store: s, Audit: audit, IDNode: idNode}
}

// GetAllProducts retourne le catalogue complet, via le cache Redis quand il
// est disponible (le client le rafraîchit en polling toutes les 3 s)
func (h *Handler) GetAllProducts(c *gin.Context) {
	ctx := c.Request.Context()

	if cached, ok := cache.GetProducts(ctx); ok {
		c.JSON(http.StatusOK, gin.H{"success": true, "products": cached})
		return
	}

	products, err := h.Store.LoadAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		return
	}

	cache.SetProducts(ctx, products)
	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}

// GetProductFilters retourne les filtres disponibles : types et badges
// distincts, et la fourchette de prix du catalogue
func (h *Handler) GetProductFilters(c *gin.Context) {
	products, err := h.Store.LoadAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		return
	}

	typeSet := map[string]bool{}
	badgeSet := map[string]bool{}
	var minPrice, maxPrice float64

	for i, p := range products {
		if p.Type != "" {
			typeSet[p.Type] = true
		}
		if p.Badge != "" {
			badgeSet[p.Badge] = true
		}
		if i == 0 {
			minPrice, maxPrice = p.Price, p.Price
		} else {
			if p.Price < minPrice {
				minPrice = p.Price
			}
			if p.Price > maxPrice {
				maxPrice = p.Price
			}
		}
	}

	types := make([]string, 0, len(typeSet))
	for t := range typeSet {
		types = append(types, t)
	}
	sort.Strings(types)

	badges := make([]string, 0, len(badgeSet))
	for b := range badgeSet {
		badges = append(badges, b)
	}
	sort.Strings(badges)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"filters": gin.H{
			"types":  types,
			"badges": badges,
			"priceRange": gin.H{
				"min": minPrice,
				"max": maxPrice,
			},
		},
	})
}

// SearchProducts filtre, trie et pagine le catalogue en mémoire
func (h *Handler) SearchProducts(c *gin.Context) {
	filters := parseSearchQuery(c)

	products, err := h.Store.LoadAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		return
	}

	matched := applyFilters(products, filters)
	sortProducts(matched, filters.Sort)

	// total et totalPages reflètent tout l'ensemble filtré, pas la page
	total := len(matched)
	totalPages := (total + filters.Limit - 1) / filters.Limit

	start := (filters.Page - 1) * filters.Limit
	end := start + filters.Limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	page := matched[start:end]
	if page == nil {
		page = []models.Product{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"products": page,
		"pagination": gin.H{
			"total":      total,
			"page":       filters.Page,
			"limit":      filters.Limit,
			"totalPages": totalPages,
		},
	})
}

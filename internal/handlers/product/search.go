package product

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Shjra/Shjra-Maps/internal/models"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Clés de tri supportées
const (
	SortName      = "name"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortDiscount  = "discount"
	SortNewest    = "newest"
)

// searchFilters est l'état de filtre reconstruit depuis les paramètres de
// requête ; le client maintient le sien de son côté
type searchFilters struct {
	Query        string
	Type         string
	Badge        string
	MinPrice     float64
	MaxPrice     float64
	DiscountOnly bool
	Sort         string
	Page         int
	Limit        int
}

// parseSearchQuery lit les paramètres avec des fallbacks sûrs : un prix non
// numérique ne doit jamais faire planter la comparaison
func parseSearchQuery(c *gin.Context) searchFilters {
	f := searchFilters{
		Query:        strings.TrimSpace(c.Query("q")),
		Type:         c.Query("type"),
		Badge:        c.Query("badge"),
		MinPrice:     0,
		MaxPrice:     math.MaxFloat64,
		DiscountOnly: c.Query("discountOnly") == "true",
		Sort:         c.DefaultQuery("sort", SortName),
	}

	if raw := c.Query("minPrice"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			f.MinPrice = v
		}
	}
	if raw := c.Query("maxPrice"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			f.MaxPrice = v
		}
	}

	f.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if f.Page < 1 {
		f.Page = 1
	}

	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "0"))
	if f.Limit < 1 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}

	return f
}

// applyFilters applique le filtre conjonctif : prix toujours, les autres
// critères seulement s'ils sont renseignés
func applyFilters(products []models.Product, f searchFilters) []models.Product {
	matched := []models.Product{}
	query := strings.ToLower(f.Query)

	for _, p := range products {
		if p.Price < f.MinPrice || p.Price > f.MaxPrice {
			continue
		}
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		if f.Type != "" && p.Type != f.Type {
			continue
		}
		if f.Badge != "" && p.Badge != f.Badge {
			continue
		}
		if f.DiscountOnly && p.Discount <= 0 {
			continue
		}
		matched = append(matched, p)
	}
	return matched
}

func matchesQuery(p models.Product, query string) bool {
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Description), query) ||
		strings.Contains(strings.ToLower(p.Type), query)
}

// sortProducts applique l'un des cinq ordres totaux
func sortProducts(products []models.Product, key string) {
	switch key {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortDiscount:
		// remise décroissante, prix croissant en cas d'égalité
		sort.SliceStable(products, func(i, j int) bool {
			if products[i].Discount != products[j].Discount {
				return products[i].Discount > products[j].Discount
			}
			return products[i].Price < products[j].Price
		})
	case SortNewest:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	default:
		sort.SliceStable(products, func(i, j int) bool {
			return strings.ToLower(products[i].Name) < strings.ToLower(products[j].Name)
		})
	}
}

package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Shjra/Shjra-Maps/internal/models"
	"github.com/Shjra/Shjra-Maps/internal/utils"
)

const userKey = "user"

// BearerToken extrait le token du header Authorization, ou "" s'il est absent
func BearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// AuthRequired exige un credential signé valide et met le principal dans le
// context Gin. 401 dans tous les autres cas.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "No token provided"})
			c.Abort()
			return
		}

		user, err := utils.ParseJWT(token, secret)
		if err != nil {
			log.Printf("❌ Vérification token échouée: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// CurrentUser retourne le principal mis en place par AuthRequired
func CurrentUser(c *gin.Context) (models.User, bool) {
	val, exists := c.Get(userKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := val.(models.User)
	return user, ok
}

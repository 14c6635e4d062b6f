package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin vérifie que le principal est l'administrateur configuré.
// Un seul principal peut muter le catalogue.
func RequireAdmin(adminID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "No token provided"})
			c.Abort()
			return
		}
		if user.ID != adminID {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Admin only"})
			c.Abort()
			return
		}
		c.Next()
	}
}

package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"veloura_back_end/internal/auth"
	"veloura_back_end/internal/utils"
)

// AuthRequired authentifie l'admin soit par cookie de session (navigateur),
// soit par token Bearer (clients API). L'identité est injectée dans le
// contexte Gin : les handlers lisent admin_id/email, jamais l'ambiant.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1️⃣ Cookie de session
		if adminID, email, ok := auth.AdminFromSession(c.Request); ok {
			c.Set("admin_id", adminID)
			c.Set("email", email)
			c.Set("role", "admin")
			c.Next()
			return
		}

		// 2️⃣ Token Bearer
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Format Authorization invalide"})
				c.Abort()
				return
			}

			adminID, email, err := utils.ParseAdminJWT(parts[1])
			if err != nil {
				log.Printf("❌ Erreur parsing JWT: %v", err)
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token invalide"})
				c.Abort()
				return
			}

			c.Set("admin_id", adminID)
			c.Set("email", email)
			c.Set("role", "admin")
			c.Next()
			return
		}

		// Pas de session, pas de token : le front redirige vers le login
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":     "Non authentifié",
			"login_url": "/admin/login",
		})
		c.Abort()
	}
}

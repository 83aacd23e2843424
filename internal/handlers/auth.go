package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"veloura_back_end/internal/auth"
	"veloura_back_end/internal/database"
	"veloura_back_end/internal/models"
	"veloura_back_end/internal/utils"
)

// ================== AUTH ADMIN ==================

func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var admin models.Admin
	err = session.Query(`SELECT admin_id, email, name, password FROM admins WHERE email = ? ALLOW FILTERING`,
		input.Email).Scan(&admin.ID, &admin.Email, &admin.Name, &admin.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	ok, err := utils.VerifyPassword(input.Password, admin.Password)
	if err != nil || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	// Session cookie pour le navigateur
	if err := auth.SetAdminSession(c, admin); err != nil {
		log.Printf("⚠️ Erreur écriture session: %v", err)
	}

	// Token pour les clients API
	token, err := utils.GenerateJWT(admin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	log.Printf("✅ Connexion admin: %s", admin.Email)
	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"adminId": admin.ID,
		"email":   admin.Email,
		"name":    admin.Name,
	})
}

func Logout(c *gin.Context) {
	if err := auth.ClearAdminSession(c); err != nil {
		log.Printf("⚠️ Erreur fermeture session: %v", err)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Déconnecté"})
}

// Me renvoie l'identité injectée par le middleware (session ou token).
func Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"adminId": c.GetString("admin_id"),
		"email":   c.GetString("email"),
		"role":    c.GetString("role"),
	})
}

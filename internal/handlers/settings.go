package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"veloura_back_end/internal/cache"
	"veloura_back_end/internal/database"
	"veloura_back_end/internal/models"
)

// GetCoverPhoto retourne l'URL de la photo de couverture de la page
// d'accueil. Réglage non critique : toute erreur de lecture retombe sur la
// sentinelle "default" plutôt que de casser la page.
func GetCoverPhoto(c *gin.Context) {
	if url, ok := cache.GetCoverPhoto(); ok {
		c.JSON(http.StatusOK, gin.H{"url": url})
		return
	}

	url := models.CoverPhotoDefault

	session, err := database.GetCatalogSession()
	if err == nil {
		var setting models.Setting
		if err := session.Query(`SELECT key, value, updated_at FROM settings WHERE key = ?`, models.CoverPhotoKey).
			Scan(&setting.Key, &setting.Value, &setting.UpdatedAt); err == nil && setting.Value != "" {
			url = setting.Value
		}
	}

	cache.SetCoverPhoto(url)
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// UpdateCoverPhoto upsert le réglage singleton cover_photo_url.
func UpdateCoverPhoto(c *gin.Context) {
	var input struct {
		URL string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	url := strings.TrimSpace(input.URL)
	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le champ 'url' est obligatoire"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// INSERT vaut upsert côté ScyllaDB
	if err := session.Query(`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)`,
		models.CoverPhotoKey, url, time.Now()).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour cover photo: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour du réglage"})
		return
	}

	cache.InvalidateCoverPhoto()

	c.JSON(http.StatusOK, gin.H{
		"key":   models.CoverPhotoKey,
		"value": url,
	})
}

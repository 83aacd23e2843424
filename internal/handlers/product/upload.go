package product

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"veloura_back_end/internal/services"
)

// =========================
// 🟢 UPLOAD IMAGES PRODUIT
// =========================
//
// Endpoint brut du Media Store : un batch de fichiers pour un couple
// produit/couleur. Utilisé par le dashboard pour compléter un produit
// existant ; le composer passe par le même store en interne.
func UploadProductImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Form-data invalide"})
		return
	}

	files := form.File["files"]
	productID := formValue(form.Value, "productId")
	colorName := formValue(form.Value, "colorName")

	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucun fichier fourni"})
		return
	}
	if productID == "" || colorName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Champs 'productId' et 'colorName' obligatoires"})
		return
	}

	paths, results, err := Media.StoreBatch(productID, colorName, files)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de l'upload des fichiers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"paths":   paths,
		"results": results,
		"message": fmt.Sprintf("%d fichier(s) uploadé(s) avec succès", len(paths)),
	})
}

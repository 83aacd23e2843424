package product

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"veloura_back_end/internal/cache"
	"veloura_back_end/internal/database"
	"veloura_back_end/internal/models"
	"veloura_back_end/internal/services"
)

// UpdateProduct - Mettre à jour un produit publié
func UpdateProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var req struct {
		Title       *string                 `json:"title"`
		Description *string                 `json:"description"`
		Price       *float64                `json:"price"`
		Variations  []models.ColorVariation `json:"variations"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	p, err := fetchProduct(session, gocql.UUID(productID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	if req.Title != nil {
		if *req.Title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Le titre ne peut pas être vide"})
			return
		}
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Le prix doit être positif"})
			return
		}
		p.Price = *req.Price
	}
	if req.Variations != nil {
		if err := models.ValidateVariations(req.Variations); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		p.Variations = req.Variations
	}

	encoded, err := models.EncodeVariations(p.Variations)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur encodage variations"})
		return
	}

	p.UpdatedAt = time.Now()
	if err := session.Query(`UPDATE products SET title = ?, description = ?, price = ?, variations = ?, updated_at = ? WHERE product_id = ?`,
		p.Title, p.Description, p.Price, encoded, p.UpdatedAt, p.ID).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour produit %s: %v", p.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}

	cache.InvalidateProducts()
	if !p.IsDraft {
		go services.IndexProduct(p)
	}

	c.JSON(http.StatusOK, p)
}

// DeleteProduct - Supprimer un produit et ses images.
// Les commandes existantes gardent leur copie dénormalisée (couleur, prix) ;
// leur product_id pointe alors dans le vide et l'admin affiche "Produit inconnu".
func DeleteProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if _, err := fetchProduct(session, gocql.UUID(productID)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	if err := session.Query(`DELETE FROM products WHERE product_id = ?`, gocql.UUID(productID)).Exec(); err != nil {
		log.Printf("❌ Erreur suppression produit %s: %v", productID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression produit"})
		return
	}

	if err := Media.RemoveProductDir(productID.String()); err != nil {
		log.Printf("⚠️ Images de %s non supprimées: %v", productID, err)
	}

	cache.InvalidateProducts()
	go services.RemoveProductFromIndex(productID.String())

	c.JSON(http.StatusOK, gin.H{
		"message":    "🗑️ Produit supprimé avec succès",
		"product_id": productID.String(),
	})
}

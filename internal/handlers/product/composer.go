package product

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"veloura_back_end/internal/cache"
	"veloura_back_end/internal/database"
	"veloura_back_end/internal/models"
	"veloura_back_end/internal/services"
)

// colorInput est la partie déclarative d'une variation : le nom et la
// pastille. Les images arrivent dans le même formulaire, champ images[<i>].
type colorInput struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// CreateProduct est le composer multi-étapes :
//  1. validation complète (aucune écriture avant)
//  2. insertion d'un brouillon invisible (is_draft = true)
//  3. upload séquentiel des images, couleur par couleur
//  4. commit des variations + publication
//
// En cas d'échec à l'étape 3, on compense : suppression du brouillon et des
// fichiers déjà écrits. Un échec au commit laisse le brouillon, mais un
// brouillon n'apparaît jamais côté boutique.
func CreateProduct(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Form-data invalide"})
		return
	}

	// 1️⃣ Validation — rien n'est écrit tant que tout n'est pas bon
	title := strings.TrimSpace(formValue(form.Value, "title"))
	description := strings.TrimSpace(formValue(form.Value, "description"))
	priceRaw := formValue(form.Value, "price")

	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le champ 'title' est obligatoire"})
		return
	}
	if description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le champ 'description' est obligatoire"})
		return
	}

	price, err := strconv.ParseFloat(priceRaw, 64)
	if err != nil || price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le prix doit être un nombre positif"})
		return
	}

	var colors []colorInput
	if err := json.Unmarshal([]byte(formValue(form.Value, "variations")), &colors); err != nil || len(colors) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Au moins une variation de couleur est requise"})
		return
	}

	seen := make(map[string]bool)
	for i, color := range colors {
		name := strings.ToLower(strings.TrimSpace(color.Name))
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("La variation %d n'a pas de nom", i+1)})
			return
		}
		if seen[name] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Nom de couleur en double: " + color.Name})
			return
		}
		seen[name] = true

		if len(form.File[imagesField(i)]) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Au moins une image est requise pour '%s'", color.Name)})
			return
		}
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// 2️⃣ Création du brouillon (invisible tant que non publié)
	p := models.Product{
		ID:          gocql.TimeUUID(),
		Title:       title,
		Description: description,
		Price:       price,
		Variations:  []models.ColorVariation{},
		IsDraft:     true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	emptyVariations, _ := models.EncodeVariations(nil)
	if err := session.Query(`INSERT INTO products (product_id, title, description, price, variations, is_draft, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Description, p.Price, emptyVariations, true, p.CreatedAt, p.UpdatedAt).Exec(); err != nil {
		log.Printf("❌ Erreur création brouillon: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit"})
		return
	}

	// 3️⃣ Upload séquentiel, couleur par couleur
	assembled := make([]models.ColorVariation, 0, len(colors))
	for i, color := range colors {
		paths, _, err := Media.StoreBatch(p.ID.String(), color.Name, form.File[imagesField(i)])
		if err != nil {
			compensateDraft(session, p.ID, color.Name)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec upload pour la couleur: " + color.Name})
			return
		}
		if len(paths) == 0 {
			// Tous les fichiers de cette couleur ont été rejetés par l'allow-list
			compensateDraft(session, p.ID, color.Name)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Aucune image valide pour la couleur: " + color.Name})
			return
		}

		assembled = append(assembled, models.ColorVariation{
			Name:   color.Name,
			Hex:    color.Hex,
			Images: paths,
		})
	}

	// Les variations ne sont jamais commitées à moitié formées
	if err := models.ValidateVariations(assembled); err != nil {
		compensateDraft(session, p.ID, "")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 4️⃣ Commit : variations complètes + publication
	encoded, err := models.EncodeVariations(assembled)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur encodage variations"})
		return
	}

	p.UpdatedAt = time.Now()
	if err := session.Query(`UPDATE products SET variations = ?, is_draft = false, updated_at = ? WHERE product_id = ?`,
		encoded, p.UpdatedAt, p.ID).Exec(); err != nil {
		// Le brouillon reste en base mais n'apparaît nulle part
		log.Printf("❌ Erreur commit produit %s: %v", p.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur publication produit"})
		return
	}

	p.Variations = assembled
	p.IsDraft = false

	cache.InvalidateProducts()

	// 🔄 Indexation Elasticsearch
	go services.IndexProduct(p)

	log.Printf("✅ Produit publié: %s (%d variations)", p.Title, len(p.Variations))
	c.JSON(http.StatusCreated, p)
}

func formValue(values map[string][]string, key string) string {
	if v := values[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}

func imagesField(index int) string {
	return fmt.Sprintf("images[%d]", index)
}

// compensateDraft nettoie un brouillon après un échec d'upload : suppression
// de la ligne et des fichiers déjà écrits. Best-effort, on logge les restes.
func compensateDraft(session *gocql.Session, productID gocql.UUID, failedColor string) {
	if err := session.Query(`DELETE FROM products WHERE product_id = ?`, productID).Exec(); err != nil {
		log.Printf("⚠️ Compensation: brouillon %s non supprimé: %v", productID, err)
	}
	if err := Media.RemoveProductDir(productID.String()); err != nil {
		log.Printf("⚠️ Compensation: fichiers de %s non supprimés: %v", productID, err)
	}
	if failedColor != "" {
		log.Printf("🧹 Brouillon %s compensé après échec sur '%s'", productID, failedColor)
	}
}

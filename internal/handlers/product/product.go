package product

import (
	"log"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"veloura_back_end/internal/cache"
	"veloura_back_end/internal/config"
	"veloura_back_end/internal/database"
	"veloura_back_end/internal/models"
	"veloura_back_end/internal/services"
)

// Media est le store de fichiers partagé par les handlers produit.
// Initialisé au démarrage (cmd/server) avec le répertoire public.
var Media *services.MediaStore

const productColumns = `product_id, title, description, price, variations, is_draft, created_at, updated_at`

// scanProducts déroule un itérateur Scylla vers des modèles, en décodant
// la colonne variations (JSON).
func scanProducts(iter *gocql.Iter) ([]models.Product, error) {
	var products []models.Product
	var p models.Product
	var rawVariations string

	for iter.Scan(&p.ID, &p.Title, &p.Description, &p.Price, &rawVariations, &p.IsDraft, &p.CreatedAt, &p.UpdatedAt) {
		variations, err := models.DecodeVariations(rawVariations)
		if err != nil {
			log.Printf("⚠️ Variations illisibles pour %s: %v", p.ID, err)
			variations = []models.ColorVariation{}
		}
		p.Variations = variations
		products = append(products, p)
		p = models.Product{} // Reset pour la prochaine itération
	}

	if err := iter.Close(); err != nil {
		return nil, err
	}
	return products, nil
}

// GetAllProducts liste les produits publiés, du plus récent au plus ancien.
func GetAllProducts(c *gin.Context) {
	// ✅ Vérifie le cache Redis
	if cached, ok := cache.GetPublishedProducts(); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT ` + productColumns + ` FROM products`).Iter()
	products, err := scanProducts(iter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits: " + err.Error()})
		return
	}

	// Les brouillons du composer restent invisibles côté boutique
	published := make([]models.Product, 0, len(products))
	for _, p := range products {
		if !p.IsDraft {
			published = append(published, p)
		}
	}

	sort.Slice(published, func(i, j int) bool {
		return published[i].CreatedAt.After(published[j].CreatedAt)
	})

	// ✅ Met en cache
	cache.SetPublishedProducts(published)

	c.JSON(http.StatusOK, published)
}

// GetProductByID retourne un produit publié, 404 sinon.
func GetProductByID(c *gin.Context) {
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

	p, err := fetchProduct(session, gocql.UUID(productID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if p.IsDraft {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	c.JSON(http.StatusOK, p)
}

func fetchProduct(session *gocql.Session, id gocql.UUID) (models.Product, error) {
	var p models.Product
	var rawVariations string

	err := session.Query(`SELECT `+productColumns+` FROM products WHERE product_id = ?`, id).
		Scan(&p.ID, &p.Title, &p.Description, &p.Price, &rawVariations, &p.IsDraft, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return models.Product{}, err
	}

	variations, err := models.DecodeVariations(rawVariations)
	if err != nil {
		variations = []models.ColorVariation{}
	}
	p.Variations = variations
	return p, nil
}

// SearchProducts cherche dans Elasticsearch, avec fallback scan ScyllaDB.
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paramètre 'q' manquant"})
		return
	}

	// 🔎 1️⃣ Recherche dans Elasticsearch (prioritaire)
	results, err := services.SearchProducts(query)
	if err == nil && len(results) > 0 {
		c.JSON(http.StatusOK, results)
		return
	}

	// 🔁 2️⃣ Fallback ScyllaDB (filtre en mémoire, catalogue mono-boutique)
	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT ` + productColumns + ` FROM products`).Iter()
	products, err := scanProducts(iter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur recherche: " + err.Error()})
		return
	}

	matches := []models.Product{}
	for _, p := range products {
		if p.IsDraft {
			continue
		}
		if containsIgnoreCase(p.Title, query) || containsIgnoreCase(p.Description, query) {
			matches = append(matches, p)
		}
	}

	c.JSON(http.StatusOK, matches)
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// ShareQR génère un QR code PNG pointant vers la fiche produit publique.
func ShareQR(c *gin.Context) {
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

	p, err := fetchProduct(session, gocql.UUID(productID))
	if err != nil || p.IsDraft {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	productURL := config.BaseURL() + "/products/" + p.ID.String()
	png, err := qrcode.Encode(productURL, qrcode.Medium, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération QR code"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

package order

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"veloura_back_end/internal/database"
	"veloura_back_end/internal/models"
	"veloura_back_end/internal/utils"
)

// Canal Redis sur lequel les nouvelles commandes sont publiées pour le
// flux temps réel du dashboard admin.
const NewOrderChannel = "orders:new"

// CreateOrder enregistre une commande boutique (paiement à la livraison).
// Le prix du produit est snapshotté au moment de la commande.
func CreateOrder(c *gin.Context) {
	var input struct {
		ProductID string `json:"product_id" binding:"required"`
		Color     string `json:"color" binding:"required"`
		Name      string `json:"name" binding:"required"`
		Phone     string `json:"phone" binding:"required"`
		Address   string `json:"address" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Phone) == "" || strings.TrimSpace(input.Address) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nom, téléphone et adresse sont obligatoires"})
		return
	}

	productID, err := uuid.Parse(input.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// Le produit doit exister et proposer la couleur choisie
	var title string
	var price float64
	var rawVariations string
	var isDraft bool
	err = session.Query(`SELECT title, price, variations, is_draft FROM products WHERE product_id = ?`,
		gocql.UUID(productID)).Scan(&title, &price, &rawVariations, &isDraft)
	if err != nil || isDraft {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	variations, err := models.DecodeVariations(rawVariations)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produit"})
		return
	}

	p := models.Product{Variations: variations}
	variation, ok := p.FindVariation(input.Color)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Couleur non disponible pour ce produit: " + input.Color})
		return
	}

	pid := gocql.UUID(productID)
	order := models.Order{
		ID:         gocql.TimeUUID(),
		ProductID:  &pid,
		Name:       strings.TrimSpace(input.Name),
		Phone:      strings.TrimSpace(input.Phone),
		Address:    strings.TrimSpace(input.Address),
		Color:      variation.Name,
		Status:     models.StatusPending,
		TotalPrice: price, // snapshot du prix courant
		CreatedAt:  time.Now(),
	}

	if err := session.Query(`INSERT INTO orders (order_id, product_id, name, phone, address, color, status, total_price, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.ProductID, order.Name, order.Phone, order.Address, order.Color,
		string(order.Status), order.TotalPrice, order.CreatedAt).Exec(); err != nil {
		log.Printf("❌ Erreur création commande: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création commande"})
		return
	}

	// Notifications best-effort : e-mail marchande + flux live admin
	go utils.NotifyNewOrder(order, title)
	go publishNewOrder(order, title)

	log.Printf("✅ Commande créée: %s (%s / %s)", order.ID, title, order.Color)
	c.JSON(http.StatusCreated, order)
}

func publishNewOrder(order models.Order, productTitle string) {
	payload, err := json.Marshal(models.OrderWithProduct{Order: order, ProductTitle: productTitle})
	if err != nil {
		return
	}
	if err := database.Redis.Publish(context.Background(), NewOrderChannel, payload).Err(); err != nil {
		log.Printf("⚠️ Publication commande sur Redis échouée: %v", err)
	}
}

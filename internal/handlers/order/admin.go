package order

import (
	"fmt"
	"log"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"veloura_back_end/internal/database"
	"veloura_back_end/internal/models"
	"veloura_back_end/internal/utils"
)

const unknownProduct = "Produit inconnu"

// GetOrders liste toutes les commandes pour l'admin, enrichies du titre
// produit. Un produit supprimé donne "Produit inconnu", la commande reste.
func GetOrders(c *gin.Context) {
	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT order_id, product_id, name, phone, address, color, status, total_price, created_at FROM orders`).Iter()

	var orders []models.Order
	var o models.Order
	var status string

	for iter.Scan(&o.ID, &o.ProductID, &o.Name, &o.Phone, &o.Address, &o.Color, &status, &o.TotalPrice, &o.CreatedAt) {
		o.Status = models.OrderStatus(status)
		orders = append(orders, o)
		o = models.Order{}
	}

	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture commandes: " + err.Error()})
		return
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	// Titres produits, avec un petit cache par requête pour éviter
	// une lecture par commande du même produit
	titles := make(map[gocql.UUID]string)
	enriched := make([]models.OrderWithProduct, 0, len(orders))
	for _, ord := range orders {
		enriched = append(enriched, models.OrderWithProduct{
			Order:        ord,
			ProductTitle: lookupTitle(session, titles, ord.ProductID),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": enriched,
		"count":  len(enriched),
	})
}

func lookupTitle(session *gocql.Session, cache map[gocql.UUID]string, productID *gocql.UUID) string {
	if productID == nil {
		return unknownProduct
	}
	if title, ok := cache[*productID]; ok {
		return title
	}

	var title string
	if err := session.Query(`SELECT title FROM products WHERE product_id = ?`, *productID).Scan(&title); err != nil {
		title = unknownProduct
	}
	cache[*productID] = title
	return title
}

// UpdateOrderStatus applique une transition de statut validée côté serveur.
// Une transition hors du graphe (ex: delivered → pending) est refusée en 409.
func UpdateOrderStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	var input struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.IsValidStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut inconnu: " + string(input.Status)})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var currentRaw string
	if err := session.Query(`SELECT status FROM orders WHERE order_id = ?`, gocql.UUID(orderID)).Scan(&currentRaw); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	current := models.OrderStatus(currentRaw)
	if !models.CanTransition(current, input.Status) {
		c.JSON(http.StatusConflict, gin.H{
			"error": fmt.Sprintf("Transition interdite: %s → %s", current, input.Status),
		})
		return
	}

	if err := session.Query(`UPDATE orders SET status = ? WHERE order_id = ?`,
		string(input.Status), gocql.UUID(orderID)).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour statut %s: %v", orderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour statut"})
		return
	}

	log.Printf("✅ Commande %s: %s → %s", orderID, current, input.Status)
	c.JSON(http.StatusOK, gin.H{
		"order_id": orderID.String(),
		"status":   input.Status,
	})
}

// GetOrderReceipt génère le reçu PDF d'une commande.
func GetOrderReceipt(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var o models.Order
	var status string
	err = session.Query(`SELECT order_id, product_id, name, phone, address, color, status, total_price, created_at
		FROM orders WHERE order_id = ?`, gocql.UUID(orderID)).
		Scan(&o.ID, &o.ProductID, &o.Name, &o.Phone, &o.Address, &o.Color, &status, &o.TotalPrice, &o.CreatedAt)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}
	o.Status = models.OrderStatus(status)

	title := lookupTitle(session, make(map[gocql.UUID]string), o.ProductID)

	pdf, err := utils.RenderReceiptPDF(o, title)
	if err != nil {
		log.Printf("❌ Erreur génération reçu %s: %v", orderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération du reçu"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="recu_%s.pdf"`, orderID))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

package admin

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"veloura_back_end/internal/analytics"
	"veloura_back_end/internal/database"
	"veloura_back_end/internal/models"
)

// GetSalesAnalytics retourne les statistiques de vente du dashboard :
// chiffre d'affaires, unités livrées, courbe par jour.
func GetSalesAnalytics(c *gin.Context) {
	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT order_id, status, total_price, created_at FROM orders`).Iter()

	var orders []models.Order
	var o models.Order
	var status string

	for iter.Scan(&o.ID, &status, &o.TotalPrice, &o.CreatedAt) {
		o.Status = models.OrderStatus(status)
		orders = append(orders, o)
		o = models.Order{}
	}

	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture commandes: " + err.Error()})
		return
	}

	// Les buckets suivent l'ordre chronologique des commandes
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})

	c.JSON(http.StatusOK, analytics.Summarize(orders))
}

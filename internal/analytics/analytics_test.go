package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veloura_back_end/internal/models"
)

func orderAt(day int, status models.OrderStatus, price float64) models.Order {
	return models.Order{
		Status:     status,
		TotalPrice: price,
		CreatedAt:  time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC).AddDate(0, 0, day),
	}
}

func TestSummarizeAllReturned(t *testing.T) {
	orders := []models.Order{
		orderAt(0, models.StatusReturned, 19.99),
		orderAt(1, models.StatusReturned, 45.00),
	}

	s := Summarize(orders)
	assert.Equal(t, 0.0, s.TotalRevenue)
	assert.Equal(t, 0, s.TotalSold)
	assert.Empty(t, s.ChartData)
}

func TestSummarizeOnlyDeliveredCountsAsSold(t *testing.T) {
	orders := []models.Order{
		orderAt(0, models.StatusPending, 10),
		orderAt(0, models.StatusConfirmed, 20),
		orderAt(1, models.StatusDelivered, 30),
		orderAt(1, models.StatusDelivered, 40),
		orderAt(2, models.StatusReturned, 50),
	}

	s := Summarize(orders)
	// Le chiffre d'affaires exclut les retours, tous les autres statuts comptent
	assert.InDelta(t, 100.0, s.TotalRevenue, 1e-9)
	assert.Equal(t, 2, s.TotalSold)
}

func TestSummarizeBucketsByDay(t *testing.T) {
	orders := []models.Order{
		orderAt(0, models.StatusDelivered, 10),
		orderAt(0, models.StatusPending, 5),
		orderAt(1, models.StatusConfirmed, 7),
		orderAt(1, models.StatusReturned, 99), // ne compte dans aucun bucket
	}

	s := Summarize(orders)
	require.Len(t, s.ChartData, 2)

	assert.Equal(t, "01/01/2026", s.ChartData[0].Date)
	assert.InDelta(t, 15.0, s.ChartData[0].Revenue, 1e-9)
	assert.Equal(t, 2, s.ChartData[0].Count)

	assert.Equal(t, "02/01/2026", s.ChartData[1].Date)
	assert.InDelta(t, 7.0, s.ChartData[1].Revenue, 1e-9)
	assert.Equal(t, 1, s.ChartData[1].Count)
}

func TestSummarizeKeepsTrailingThirtyBuckets(t *testing.T) {
	// 45 jours distincts avec commande : seuls les 30 derniers buckets restent.
	// Ce n'est pas une fenêtre glissante : des jours sans commande ne
	// consomment pas de bucket.
	var orders []models.Order
	for day := 0; day < 45; day++ {
		orders = append(orders, orderAt(day, models.StatusDelivered, 1))
	}

	s := Summarize(orders)
	require.Len(t, s.ChartData, 30)
	assert.Equal(t, "16/01/2026", s.ChartData[0].Date)
	assert.Equal(t, "14/02/2026", s.ChartData[29].Date)

	// Le total, lui, couvre toutes les commandes
	assert.InDelta(t, 45.0, s.TotalRevenue, 1e-9)
	assert.Equal(t, 45, s.TotalSold)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0.0, s.TotalRevenue)
	assert.Equal(t, 0, s.TotalSold)
	assert.NotNil(t, s.ChartData)
	assert.Empty(t, s.ChartData)
}

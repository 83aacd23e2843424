package analytics

import (
	"veloura_back_end/internal/models"
)

// Agrégation des ventes pour le dashboard admin. Tout est calculé en
// mémoire sur l'ensemble des commandes : catalogue mono-boutique, volumes
// modestes, pas besoin de table matérialisée.

const maxChartBuckets = 30

type DayBucket struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Count   int     `json:"count"`
}

type Summary struct {
	TotalRevenue float64     `json:"totalRevenue"`
	TotalSold    int         `json:"totalSold"`
	ChartData    []DayBucket `json:"chartData"`
}

// Summarize calcule le chiffre d'affaires (hors retours), le nombre de
// commandes livrées, et les ventes par jour calendaire.
//
// Le graphe garde les 30 derniers jours distincts AYANT des commandes,
// pas une fenêtre glissante de 30 jours : avec peu de commandes, les
// buckets peuvent couvrir bien plus d'un mois calendaire.
func Summarize(orders []models.Order) Summary {
	summary := Summary{ChartData: []DayBucket{}}

	buckets := make(map[string]*DayBucket)
	var bucketOrder []string

	for _, order := range orders {
		if order.Status != models.StatusReturned {
			summary.TotalRevenue += order.TotalPrice
		}
		if order.Status == models.StatusDelivered {
			summary.TotalSold++
		}

		// Les retours ne comptent dans aucun bucket
		if order.Status == models.StatusReturned {
			continue
		}

		date := order.CreatedAt.Format("02/01/2006")
		bucket, ok := buckets[date]
		if !ok {
			bucket = &DayBucket{Date: date}
			buckets[date] = bucket
			bucketOrder = append(bucketOrder, date)
		}
		bucket.Revenue += order.TotalPrice
		bucket.Count++
	}

	if len(bucketOrder) > maxChartBuckets {
		bucketOrder = bucketOrder[len(bucketOrder)-maxChartBuckets:]
	}
	for _, date := range bucketOrder {
		summary.ChartData = append(summary.ChartData, *buckets[date])
	}

	return summary
}

package models

import (
	"time"

	"github.com/gocql/gocql"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusDelivered OrderStatus = "delivered"
	StatusReturned  OrderStatus = "returned"
)

// Graphe des transitions autorisées. delivered et returned sont terminaux.
var validNext = map[OrderStatus]map[OrderStatus]bool{
	StatusPending:   {StatusConfirmed: true, StatusReturned: true},
	StatusConfirmed: {StatusDelivered: true, StatusReturned: true},
	StatusDelivered: {},
	StatusReturned:  {},
}

// CanTransition indique si le passage from → to est autorisé.
// La validation se fait côté serveur, on ne fait pas confiance aux boutons du front.
func CanTransition(from, to OrderStatus) bool {
	return validNext[from][to]
}

// IsValidStatus vérifie qu'une valeur reçue du client est un statut connu.
func IsValidStatus(s OrderStatus) bool {
	_, ok := validNext[s]
	return ok
}

type Order struct {
	ID         gocql.UUID  `json:"id" db:"order_id"`
	ProductID  *gocql.UUID `json:"product_id" db:"product_id"`
	Name       string      `json:"name" db:"name"`
	Phone      string      `json:"phone" db:"phone"`
	Address    string      `json:"address" db:"address"`
	Color      string      `json:"color" db:"color"`
	Status     OrderStatus `json:"status" db:"status"`
	TotalPrice float64     `json:"total_price" db:"total_price"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`
}

// OrderWithProduct enrichit une commande avec le titre du produit pour
// l'affichage admin. Le produit peut avoir été supprimé entre temps.
type OrderWithProduct struct {
	Order
	ProductTitle string `json:"product_title"`
}

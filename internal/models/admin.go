package models

import "time"

// Admin est le compte unique (ou presque) qui gère la boutique.
// Pas de clients enregistrés : les commandes se passent sans compte.
type Admin struct {
	ID        string    `json:"id" db:"admin_id"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	Password  string    `json:"-" db:"password"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

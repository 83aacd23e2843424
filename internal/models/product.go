package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gocql/gocql"
)

// ColorVariation représente une option de couleur d'un produit :
// un libellé, une pastille hexadécimale et ses images uploadées.
type ColorVariation struct {
	Name   string   `json:"name"`
	Hex    string   `json:"hex"`
	Images []string `json:"images"`
}

type Product struct {
	ID          gocql.UUID       `json:"id" db:"product_id"`
	Title       string           `json:"title" db:"title"`
	Description string           `json:"description" db:"description"`
	Price       float64          `json:"price" db:"price"`
	Variations  []ColorVariation `json:"variations" db:"variations"`
	IsDraft     bool             `json:"is_draft" db:"is_draft"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at" db:"updated_at"`
}

// EncodeVariations sérialise les variations en JSON pour la colonne text
// (même approche que pour des items de commande : pas de type composite côté base).
func EncodeVariations(variations []ColorVariation) (string, error) {
	if variations == nil {
		variations = []ColorVariation{}
	}
	data, err := json.Marshal(variations)
	if err != nil {
		return "", fmt.Errorf("encodage variations: %v", err)
	}
	return string(data), nil
}

// DecodeVariations désérialise la colonne text vers la liste de variations.
// Une colonne vide vaut "aucune variation", pas une erreur.
func DecodeVariations(raw string) ([]ColorVariation, error) {
	if strings.TrimSpace(raw) == "" {
		return []ColorVariation{}, nil
	}
	var variations []ColorVariation
	if err := json.Unmarshal([]byte(raw), &variations); err != nil {
		return nil, fmt.Errorf("décodage variations: %v", err)
	}
	return variations, nil
}

// FindVariation retrouve une variation par son nom (insensible à la casse).
func (p *Product) FindVariation(name string) (ColorVariation, bool) {
	for _, v := range p.Variations {
		if strings.EqualFold(v.Name, name) {
			return v, true
		}
	}
	return ColorVariation{}, false
}

// ValidateVariations vérifie les invariants d'une liste de variations avant
// publication : au moins une variation, noms uniques, au moins une image chacune.
func ValidateVariations(variations []ColorVariation) error {
	if len(variations) == 0 {
		return fmt.Errorf("au moins une variation de couleur est requise")
	}

	seen := make(map[string]bool)
	for _, v := range variations {
		name := strings.ToLower(strings.TrimSpace(v.Name))
		if name == "" {
			return fmt.Errorf("une variation sans nom n'est pas autorisée")
		}
		if seen[name] {
			return fmt.Errorf("nom de couleur en double: %s", v.Name)
		}
		seen[name] = true

		if len(v.Images) == 0 {
			return fmt.Errorf("la variation '%s' doit avoir au moins une image", v.Name)
		}
	}
	return nil
}

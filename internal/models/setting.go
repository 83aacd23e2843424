package models

import "time"

// CoverPhotoDefault est la valeur sentinelle renvoyée quand aucune photo
// de couverture n'est configurée (ou quand la lecture échoue).
const CoverPhotoDefault = "default"

const CoverPhotoKey = "cover_photo_url"

type Setting struct {
	Key       string    `json:"key" db:"key"`
	Value     string    `json:"value" db:"value"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

package cache

import (
	"context"
	"encoding/json"
	"time"

	"veloura_back_end/internal/database"
	"veloura_back_end/internal/models"
)

const (
	ProductListCacheTTL = 10 * time.Minute
	CoverPhotoCacheTTL  = 5 * time.Minute

	productListKey = "products:published"
	coverPhotoKey  = "settings:cover_photo_url"
)

// GetPublishedProducts récupère la liste publique depuis Redis, ou rien.
func GetPublishedProducts() ([]models.Product, bool) {
	ctx := context.Background()

	data, err := database.Redis.Get(ctx, productListKey).Result()
	if err != nil || data == "" {
		return nil, false
	}

	var products []models.Product
	if json.Unmarshal([]byte(data), &products) != nil {
		return nil, false
	}
	return products, true
}

// SetPublishedProducts met la liste publique en cache.
func SetPublishedProducts(products []models.Product) {
	ctx := context.Background()
	if data, err := json.Marshal(products); err == nil {
		database.Redis.Set(ctx, productListKey, data, ProductListCacheTTL)
	}
}

// InvalidateProducts invalide la liste publique après toute écriture catalogue.
func InvalidateProducts() {
	ctx := context.Background()
	database.Redis.Del(ctx, productListKey)
}

// GetCoverPhoto / SetCoverPhoto / InvalidateCoverPhoto : même principe pour
// le réglage singleton de la photo de couverture.
func GetCoverPhoto() (string, bool) {
	ctx := context.Background()
	val, err := database.Redis.Get(ctx, coverPhotoKey).Result()
	if err != nil || val == "" {
		return "", false
	}
	return val, true
}

func SetCoverPhoto(url string) {
	ctx := context.Background()
	database.Redis.Set(ctx, coverPhotoKey, url, CoverPhotoCacheTTL)
}

func InvalidateCoverPhoto() {
	ctx := context.Background()
	database.Redis.Del(ctx, coverPhotoKey)
}

package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"veloura_back_end/internal/auth"
	"veloura_back_end/internal/config"
	"veloura_back_end/internal/database"
	"veloura_back_end/internal/handlers/product"
	"veloura_back_end/internal/routes"
	"veloura_back_end/internal/services"
	"veloura_back_end/internal/utils"
)

func main() {
	config.Load()

	database.ConnectDatabases()

	auth.InitSessionStore()

	// Le Media Store écrit sous le répertoire public servi en statique
	product.Media = services.NewMediaStore(config.PublicDir())

	seedAdmin()

	// ✅ Pré-chauffer le cache Redis
	warmupRedisCache()

	r := gin.Default()
	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Serveur Veloura lancé sur le port", port)
	r.Run(":" + port)
}

// seedAdmin crée le compte admin initial depuis ADMIN_EMAIL/ADMIN_PASSWORD
// s'il n'existe pas encore. Sans ces variables, la table doit être peuplée
// à la main.
func seedAdmin() {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("⚠️ ADMIN_EMAIL/ADMIN_PASSWORD absents — pas de compte admin créé")
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		log.Fatalf("❌ Impossible de vérifier le compte admin: %v", err)
	}

	var existing string
	if err := session.Query(`SELECT admin_id FROM admins WHERE email = ? ALLOW FILTERING`, email).Scan(&existing); err == nil {
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		log.Fatalf("❌ Hash du mot de passe admin impossible: %v", err)
	}

	if err := session.Query(`INSERT INTO admins (admin_id, email, name, password, created_at) VALUES (?, ?, ?, ?, ?)`,
		gocql.TimeUUID().String(), email, "Admin", hash, time.Now()).Exec(); err != nil {
		log.Fatalf("❌ Création du compte admin impossible: %v", err)
	}

	log.Println("✅ Compte admin créé:", email)
}

// warmupRedisCache pré-chauffe le cache Redis pour éviter la latence du premier appel
func warmupRedisCache() {
	ctx := context.Background()
	if err := database.Redis.Ping(ctx).Err(); err == nil {
		log.Println("✅ Cache Redis pré-chauffé")
	}
}

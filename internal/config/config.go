package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func Load() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}

	// Le Catalog Store est obligatoire : sans lui le serveur ne démarre pas.
	for _, key := range []string{"SCYLLA_HOSTS", "SCYLLA_KEYSPACE", "SCYLLA_ROLE", "SCYLLA_PASSWORD"} {
		if os.Getenv(key) == "" {
			log.Fatalf("❌ Variable d'environnement %s manquante", key)
		}
	}
}

// PublicDir retourne le répertoire public servi par le serveur web
// (les images uploadées vivent sous public/uploads/...).
func PublicDir() string {
	if dir := os.Getenv("PUBLIC_DIR"); dir != "" {
		return dir
	}
	return "public"
}

// BaseURL retourne l'URL publique de la boutique (QR codes, liens partagés).
func BaseURL() string {
	if u := os.Getenv("BASE_URL"); u != "" {
		return u
	}
	return "http://localhost:8080"
}

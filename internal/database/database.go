package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gocql/gocql"
	"github.com/redis/go-redis/v9"
)

// --- Configuration ScyllaDB ---
type ScyllaConfig struct {
	Hosts       []string
	Keyspace    string
	Username    string
	Password    string
	Timeout     time.Duration
	NumConns    int
	Consistency gocql.Consistency
}

// ScyllaManager garde une session unique vers le keyspace catalogue
// (products, orders, settings, admins) et la recrée si elle devient invalide.
type ScyllaManager struct {
	session *gocql.Session
	config  ScyllaConfig
	mu      sync.Mutex
}

// --- Variables Globales ---
var (
	Scylla  *ScyllaManager
	Redis   *redis.Client
	Elastic *elasticsearch.Client
)

// --- Initialisation ---
func ConnectDatabases() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 1. Initialiser ScyllaDB (le Catalog Store)
	if err := InitScyllaDB(); err != nil {
		log.Fatalf("❌ Échec initialisation ScyllaDB: %v", err)
	}

	// 2. Initialiser Redis (cache + rate limiting + pub/sub commandes)
	connectRedis(ctx)

	// 3. Initialiser Elasticsearch (recherche produits, optionnel)
	connectElastic()

	log.Println("✅ Toutes les bases de données sont connectées")
}

// =============================================
// SCYLLA DB (Catalog Store)
// =============================================

func InitScyllaDB() error {
	Scylla = &ScyllaManager{config: loadScyllaConfig()}

	if _, err := Scylla.Session(); err != nil {
		return fmt.Errorf("échec initialisation keyspace %s: %v", Scylla.config.Keyspace, err)
	}

	// Note: Les tables doivent être créées via scripts/scylladb_init.cql
	return nil
}

// loadScyllaConfig charge la configuration depuis .env
func loadScyllaConfig() ScyllaConfig {
	return ScyllaConfig{
		Hosts:       strings.Split(os.Getenv("SCYLLA_HOSTS"), ","),
		Keyspace:    os.Getenv("SCYLLA_KEYSPACE"),
		Username:    os.Getenv("SCYLLA_ROLE"),
		Password:    os.Getenv("SCYLLA_PASSWORD"),
		Timeout:     5 * time.Second,
		NumConns:    10,
		Consistency: gocql.Quorum,
	}
}

func createScyllaCluster(config ScyllaConfig) *gocql.ClusterConfig {
	cluster := gocql.NewCluster(config.Hosts...)
	cluster.Keyspace = config.Keyspace
	cluster.Consistency = config.Consistency
	cluster.Timeout = config.Timeout
	cluster.NumConns = config.NumConns
	cluster.ReconnectInterval = 1 * time.Second
	cluster.Authenticator = gocql.PasswordAuthenticator{
		Username: config.Username,
		Password: config.Password,
	}
	cluster.PoolConfig.HostSelectionPolicy = gocql.TokenAwareHostPolicy(gocql.RoundRobinHostPolicy())
	return cluster
}

// Session retourne la session catalogue, en la recréant au besoin.
func (sm *ScyllaManager) Session() (*gocql.Session, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.session != nil {
		if err := sm.session.Query("SELECT now() FROM system.local").Exec(); err == nil {
			return sm.session, nil
		}
		// Session invalide, on la recrée
		sm.session.Close()
		sm.session = nil
	}

	session, err := createScyllaCluster(sm.config).CreateSession()
	if err != nil {
		return nil, fmt.Errorf("erreur création session pour %s: %v", sm.config.Keyspace, err)
	}

	sm.session = session
	log.Printf("✅ Nouvelle session ScyllaDB pour keyspace '%s' (utilisateur: %s)",
		sm.config.Keyspace, sm.config.Username)

	return session, nil
}

// CloseScylla ferme la session ScyllaDB
func CloseScylla() {
	Scylla.mu.Lock()
	defer Scylla.mu.Unlock()

	if Scylla.session != nil {
		Scylla.session.Close()
		Scylla.session = nil
		log.Printf("🔌 Session ScyllaDB fermée pour keyspace '%s'", Scylla.config.Keyspace)
	}
}

// GetCatalogSession retourne la session du keyspace catalogue
func GetCatalogSession() (*gocql.Session, error) {
	if Scylla == nil {
		return nil, fmt.Errorf("ScyllaDB non initialisé")
	}
	return Scylla.Session()
}

// =============================================
// REDIS
// =============================================
func connectRedis(ctx context.Context) {
	Redis = redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_HOST"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if err := Redis.Ping(ctx).Err(); err != nil {
		log.Fatal("❌ Erreur connexion Redis:", err)
	}
	log.Println("✅ Connecté à Redis")
}

// =============================================
// ELASTICSEARCH
// =============================================
func connectElastic() {
	elasticURL := os.Getenv("ELASTIC_URL")
	if elasticURL == "" {
		// La recherche retombe sur un scan ScyllaDB quand Elastic est absent
		log.Println("⚠️ ELASTIC_URL absent — recherche produits en mode dégradé")
		return
	}

	cfg := elasticsearch.Config{
		Addresses: []string{elasticURL},
		Username:  os.Getenv("ELASTIC_USER"),
		Password:  os.Getenv("ELASTIC_PASSWORD"),
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		log.Fatal("❌ Erreur création client Elasticsearch:", err)
	}

	res, err := client.Info()
	if err != nil {
		log.Fatal("❌ Erreur connexion Elasticsearch:", err)
	}
	defer res.Body.Close()

	Elastic = client
	log.Println("✅ Connecté à Elasticsearch")
}

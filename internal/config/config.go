package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Load charge le fichier .env s'il existe
func Load() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}
}

// Config regroupe toute la configuration lue une seule fois au démarrage
// puis injectée partout (l'ID admin n'est plus une constante dupliquée)
type Config struct {
	Port string

	DiscordClientID     string
	DiscordClientSecret string
	DiscordRedirectURI  string
	JWTSecret           string

	// file | mongo | scylla
	StorageDriver string
	ProductsFile  string
	MongoURI      string
	MongoDB       string
	ScyllaHosts   string
	ScyllaKS      string
	ScyllaRole    string
	ScyllaPass    string

	RedisHost     string
	RedisPassword string
	ElasticURL    string
	ElasticUser   string
	ElasticPass   string

	WebhookURL         string
	ProductsWebhookURL string
	AdminID            string
}

func New() Config {
	return Config{
		Port: getEnv("PORT", "3000"),

		DiscordClientID:     os.Getenv("DISCORD_CLIENT_ID"),
		DiscordClientSecret: os.Getenv("DISCORD_CLIENT_SECRET"),
		DiscordRedirectURI:  getEnv("DISCORD_REDIRECT_URI", "http://localhost:3000/auth/discord/callback"),
		JWTSecret:           getEnv("JWT_SECRET", "fivem-maps-jwt-secret-key-change-in-production"),

		StorageDriver: getEnv("STORAGE_DRIVER", "file"),
		ProductsFile:  getEnv("PRODUCTS_FILE", "products.json"),
		MongoURI:      os.Getenv("MONGO_URI"),
		MongoDB:       getEnv("MONGO_DB", "shjra_maps"),
		ScyllaHosts:   os.Getenv("SCYLLA_HOSTS"),
		ScyllaKS:      os.Getenv("SCYLLA_KEYSPACE"),
		ScyllaRole:    os.Getenv("SCYLLA_ROLE"),
		ScyllaPass:    os.Getenv("SCYLLA_PASSWORD"),

		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		ElasticURL:    os.Getenv("ELASTIC_URL"),
		ElasticUser:   os.Getenv("ELASTIC_USER"),
		ElasticPass:   os.Getenv("ELASTIC_PASSWORD"),

		WebhookURL:         os.Getenv("WEBHOOK_URL"),
		ProductsWebhookURL: os.Getenv("PRODUCTS_WEBHOOK_URL"),
		AdminID:            getEnv("ADMIN_ID", "1100354997738274858"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

package main

import (
	"context"
	"log"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	"github.com/Shjra/Shjra-Maps/internal/auth"
	"github.com/Shjra/Shjra-Maps/internal/config"
	"github.com/Shjra/Shjra-Maps/internal/database"
	"github.com/Shjra/Shjra-Maps/internal/handlers"
	"github.com/Shjra/Shjra-Maps/internal/handlers/product"
	"github.com/Shjra/Shjra-Maps/internal/routes"
	"github.com/Shjra/Shjra-Maps/internal/store"
	"github.com/Shjra/Shjra-Maps/internal/utils"
)

func main() {
	config.Load()
	cfg := config.New()

	if cfg.DiscordClientID == "" || cfg.DiscordClientSecret == "" {
		log.Println("⚠️ DISCORD_CLIENT_ID/SECRET manquants — le login Discord ne fonctionnera pas")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	productStore := initStore(ctx, cfg)
	database.ConnectRedis(ctx, cfg.RedisHost, cfg.RedisPassword)
	database.ConnectElastic(cfg.ElasticURL, cfg.ElasticUser, cfg.ElasticPass)
	defer database.Close()

	idNode, err := snowflake.NewNode(1)
	if err != nil {
		log.Fatal("❌ Impossible d'initialiser le générateur d'id:", err)
	}

	provider := auth.NewDiscordProvider(cfg.DiscordClientID, cfg.DiscordClientSecret, cfg.DiscordRedirectURI)
	authHandler := handlers.NewAuthHandler(provider, cfg.JWTSecret, utils.NewWebhookNotifier(cfg.WebhookURL))
	productHandler := product.NewHandler(productStore, utils.NewWebhookNotifier(cfg.ProductsWebhookURL), idNode)

	r := gin.Default()
	routes.RegisterRoutes(r, cfg, authHandler, productHandler)

	log.Println("🚀 Serveur Shjra Maps lancé sur le port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("❌ Serveur arrêté:", err)
	}
}

// initStore choisit le backend du catalogue selon STORAGE_DRIVER
func initStore(ctx context.Context, cfg config.Config) store.ProductStore {
	switch cfg.StorageDriver {
	case "mongo":
		if err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB); err != nil {
			log.Fatal("❌ Échec connexion MongoDB:", err)
		}
		return store.NewMongoStore(database.Mongo)

	case "scylla":
		if err := database.ConnectScylla(cfg.ScyllaHosts, cfg.ScyllaKS, cfg.ScyllaRole, cfg.ScyllaPass); err != nil {
			log.Fatal("❌ Échec connexion ScyllaDB:", err)
		}
		s := store.NewScyllaStore(database.Scylla)
		if err := s.EnsureSchema(ctx); err != nil {
			log.Fatal("❌ Échec création du schéma products:", err)
		}
		return s

	default:
		log.Println("📁 Catalogue produits sur fichier:", cfg.ProductsFile)
		return store.NewFileStore(cfg.ProductsFile)
	}
}

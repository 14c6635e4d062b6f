package database

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gocql/gocql"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// --- Variables Globales ---
var (
	Mongo       *mongo.Database
	mongoClient *mongo.Client
	Scylla      *gocql.Session
	Redis       *redis.Client
	Elastic     *elasticsearch.Client
)

// ConnectMongo initialise la connexion MongoDB
func ConnectMongo(ctx context.Context, uri, dbName string) error {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return err
	}

	mongoClient = client
	Mongo = client.Database(dbName)
	log.Println("✅ Connecté à MongoDB:", dbName)
	return nil
}

// ConnectScylla initialise la session ScyllaDB
func ConnectScylla(hosts, keyspace, username, password string) error {
	cluster := gocql.NewCluster(strings.Split(hosts, ",")...)
	cluster.Keyspace = keyspace
	cluster.Consistency = gocql.Quorum
	cluster.Timeout = 5 * time.Second
	cluster.ReconnectInterval = 1 * time.Second
	if username != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: username,
			Password: password,
		}
	}
	cluster.PoolConfig.HostSelectionPolicy = gocql.TokenAwareHostPolicy(gocql.RoundRobinHostPolicy())

	session, err := cluster.CreateSession()
	if err != nil {
		return err
	}

	Scylla = session
	log.Printf("✅ Session ScyllaDB ouverte sur le keyspace '%s'", keyspace)
	return nil
}

// ConnectRedis initialise le cache Redis (optionnel : sans REDIS_HOST le
// serveur tourne sans cache ni rate limiting)
func ConnectRedis(ctx context.Context, host, password string) {
	if host == "" {
		log.Println("⚠️ REDIS_HOST absent — cache et rate limiting désactivés")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     host,
		Password: password,
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Redis injoignable (%v) — on continue sans cache", err)
		return
	}

	Redis = client
	log.Println("✅ Connecté à Redis")
}

// ConnectElastic initialise le client Elasticsearch (optionnel)
func ConnectElastic(url, username, password string) {
	if url == "" {
		log.Println("⚠️ ELASTIC_URL absent — indexation produits désactivée")
		return
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
		Username:  username,
		Password:  password,
	})
	if err != nil {
		log.Printf("⚠️ Erreur création client Elasticsearch (%v) — on continue sans indexation", err)
		return
	}

	res, err := client.Info()
	if err != nil {
		log.Printf("⚠️ Elasticsearch injoignable (%v) — on continue sans indexation", err)
		return
	}
	defer res.Body.Close()

	Elastic = client
	log.Println("✅ Connecté à Elasticsearch")
}

// Close ferme proprement toutes les connexions ouvertes
func Close() {
	if mongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(ctx); err != nil {
			log.Printf("⚠️ Erreur fermeture MongoDB: %v", err)
		}
	}
	if Scylla != nil {
		Scylla.Close()
		log.Println("🔌 Session ScyllaDB fermée")
	}
	if Redis != nil {
		Redis.Close()
	}
}

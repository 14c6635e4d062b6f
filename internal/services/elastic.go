package services

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/Shjra/Shjra-Maps/internal/database"
	"github.com/Shjra/Shjra-Maps/internal/models"
)

const productsIndex = "products"

//
// --- INDEXATION DANS ELASTICSEARCH ---
//
// Miroir fire-and-forget du catalogue : la recherche elle-même filtre en
// mémoire, l'index sert aux outils externes (Kibana, etc.)
//

// IndexProduct indexe un produit (création ou mise à jour)
func IndexProduct(p models.Product) {
	if database.Elastic == nil {
		return
	}

	data, _ := json.Marshal(p)
	req := esapi.IndexRequest{
		Index:      productsIndex,
		DocumentID: strconv.FormatInt(p.ID, 10),
		Body:       bytes.NewReader(data),
		Refresh:    "true",
	}

	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		log.Println("❌ Erreur envoi Elastic:", err)
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Printf("⚠️ Elastic a renvoyé une erreur pour %s: %s", p.Name, res.String())
	} else {
		log.Printf("✅ Produit indexé dans Elasticsearch: %s", p.Name)
	}
}

// RemoveProduct retire un produit supprimé de l'index
func RemoveProduct(id int64) {
	if database.Elastic == nil {
		return
	}

	req := esapi.DeleteRequest{
		Index:      productsIndex,
		DocumentID: strconv.FormatInt(id, 10),
	}

	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		log.Println("❌ Erreur suppression Elastic:", err)
		return
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != 404 {
		log.Printf("⚠️ Elastic a renvoyé une erreur pour l'id %d: %s", id, res.String())
	}
}

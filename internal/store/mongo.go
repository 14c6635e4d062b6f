package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Shjra/Shjra-Maps/internal/models"
)

// MongoStore garde un document par produit dans la collection "products",
// indexé par le champ numérique "id". Les mises à jour et suppressions sont
// des opérations mono-document, atomiques côté MongoDB.
type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection("products")}
}

func (s *MongoStore) LoadAll(ctx context.Context) ([]models.Product, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *MongoStore) SaveAll(ctx context.Context, products []models.Product) error {
	// Sémantique full-replace : on vide la collection puis on réinsère tout
	if _, err := s.coll.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if len(products) == 0 {
		return nil
	}

	docs := make([]interface{}, len(products))
	for i, p := range products {
		docs[i] = p
	}
	_, err := s.coll.InsertMany(ctx, docs)
	return err
}

func (s *MongoStore) FindByID(ctx context.Context, id int64) (models.Product, error) {
	var p models.Product
	err := s.coll.FindOne(ctx, bson.M{"id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, ErrNotFound
	}
	return p, err
}

func (s *MongoStore) Insert(ctx context.Context, p models.Product) error {
	_, err := s.coll.InsertOne(ctx, p)
	return err
}

func (s *MongoStore) UpdateByID(ctx context.Context, id int64, update models.ProductUpdate) (models.Product, error) {
	set := updateSet(update)
	if len(set) == 0 {
		// Rien à fusionner : on retourne le document tel quel
		return s.FindByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p models.Product
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, ErrNotFound
	}
	return p, err
}

func (s *MongoStore) DeleteByID(ctx context.Context, id int64) (models.Product, bool, error) {
	var p models.Product
	err := s.coll.FindOneAndDelete(ctx, bson.M{"id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, false, nil
	}
	if err != nil {
		return models.Product{}, false, err
	}
	return p, true, nil
}

// updateSet ne garde que les champs présents dans la requête
func updateSet(u models.ProductUpdate) bson.M {
	set := bson.M{}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Type != nil {
		set["type"] = *u.Type
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Price != nil {
		set["price"] = *u.Price
	}
	if u.Color != nil {
		set["color"] = *u.Color
	}
	if u.ImageURL != nil {
		set["imageUrl"] = *u.ImageURL
	}
	if u.Features != nil {
		set["features"] = []string(*u.Features)
	}
	if u.Badge != nil {
		set["badge"] = *u.Badge
	}
	if u.Discount != nil {
		set["discount"] = *u.Discount
	}
	return set
}

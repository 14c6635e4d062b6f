package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Badges produit supportés
const (
	BadgeNew     = "new"
	BadgePopular = "popular"
	BadgeHot     = "hot"
)

type Product struct {
	ID          int64       `json:"id" bson:"id"`
	Name        string      `json:"name" bson:"name"`
	Type        string      `json:"type" bson:"type"`
	Description string      `json:"description" bson:"description"`
	Price       float64     `json:"price" bson:"price"`
	Color       string      `json:"color" bson:"color"`
	ImageURL    string      `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Features    FeatureList `json:"features" bson:"features"`
	Badge       string      `json:"badge,omitempty" bson:"badge,omitempty"`
	Discount    int         `json:"discount,omitempty" bson:"discount,omitempty"`
	CreatedAt   time.Time   `json:"createdAt" bson:"createdAt"`
}

// ProductInput est le corps d'une création de produit (id et createdAt générés côté serveur)
type ProductInput struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Description string      `json:"description"`
	Price       float64     `json:"price"`
	Color       string      `json:"color"`
	ImageURL    string      `json:"imageUrl"`
	Features    FeatureList `json:"features"`
	Badge       string      `json:"badge"`
	Discount    int         `json:"discount"`
}

func (in ProductInput) ToProduct(id int64, now time.Time) Product {
	return Product{
		ID:          id,
		Name:        in.Name,
		Type:        in.Type,
		Description: in.Description,
		Price:       in.Price,
		Color:       in.Color,
		ImageURL:    in.ImageURL,
		Features:    in.Features,
		Badge:       in.Badge,
		Discount:    in.Discount,
		CreatedAt:   now,
	}
}

// ProductUpdate est une mise à jour partielle : un champ nil est absent de la
// requête et le champ existant est conservé
type ProductUpdate struct {
	Name        *string      `json:"name"`
	Type        *string      `json:"type"`
	Description *string      `json:"description"`
	Price       *float64     `json:"price"`
	Color       *string      `json:"color"`
	ImageURL    *string      `json:"imageUrl"`
	Features    *FeatureList `json:"features"`
	Badge       *string      `json:"badge"`
	Discount    *int         `json:"discount"`
}

// ApplyTo fusionne les champs présents sur le produit existant
func (u ProductUpdate) ApplyTo(p *Product) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Type != nil {
		p.Type = *u.Type
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Color != nil {
		p.Color = *u.Color
	}
	if u.ImageURL != nil {
		p.ImageURL = *u.ImageURL
	}
	if u.Features != nil {
		p.Features = *u.Features
	}
	if u.Badge != nil {
		p.Badge = *u.Badge
	}
	if u.Discount != nil {
		p.Discount = *u.Discount
	}
}

// FeatureList normalise la double représentation des features (texte multi-lignes
// ou liste) en une liste canonique dès la désérialisation
type FeatureList []string

func splitFeatureText(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeFeatures(items []string) []string {
	var out []string
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (f FeatureList) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(f))
}

func (f *FeatureList) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*f = nil
		return nil
	}

	if data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*f = splitFeatureText(text)
		return nil
	}

	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*f = normalizeFeatures(items)
	return nil
}

func (f FeatureList) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if f == nil {
		return bson.MarshalValue([]string{})
	}
	return bson.MarshalValue([]string(f))
}

func (f *FeatureList) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}

	switch t {
	case bsontype.Null, bsontype.Undefined:
		*f = nil
		return nil
	case bsontype.String:
		*f = splitFeatureText(raw.StringValue())
		return nil
	case bsontype.Array:
		var items []string
		if err := raw.Unmarshal(&items); err != nil {
			return err
		}
		*f = normalizeFeatures(items)
		return nil
	}

	return fmt.Errorf("features: type BSON inattendu %s", t)
}

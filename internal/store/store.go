// Package store définit l'accès au catalogue produits derrière une interface
// unique, avec trois backends interchangeables : fichier JSON plat, MongoDB
// et ScyllaDB.
package store

import (
	"context"
	"errors"

	"github.com/Shjra/Shjra-Maps/internal/models"
)

var ErrNotFound = errors.New("produit introuvable")

type ProductStore interface {
	// LoadAll retourne tous les produits du catalogue
	LoadAll(ctx context.Context) ([]models.Product, error)
	// SaveAll remplace intégralement le catalogue (sémantique full-replace)
	SaveAll(ctx context.Context, products []models.Product) error
	FindByID(ctx context.Context, id int64) (models.Product, error)
	Insert(ctx context.Context, p models.Product) error
	// UpdateByID applique une mise à jour partielle et retourne le produit fusionné
	UpdateByID(ctx context.Context, id int64, update models.ProductUpdate) (models.Product, error)
	// DeleteByID retourne le produit supprimé et false si aucun enregistrement n'existait
	DeleteByID(ctx context.Context, id int64) (models.Product, bool, error)
}

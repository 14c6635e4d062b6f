package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gocql/gocql"

	"github.com/Shjra/Shjra-Maps/internal/models"
)

// ScyllaStore persiste le catalogue dans une table products partitionnée par
// id. UPDATE et DELETE sont mono-enregistrement ; comme Cassandra traite
// UPDATE comme un upsert, l'existence est vérifiée par lecture avant écriture.
type ScyllaStore struct {
	session *gocql.Session
}

func NewScyllaStore(session *gocql.Session) *ScyllaStore {
	return &ScyllaStore{session: session}
}

const scyllaColumns = "id, name, type, description, price, color, image_url, features, badge, discount, created_at"

func (s *ScyllaStore) LoadAll(ctx context.Context) ([]models.Product, error) {
	iter := s.session.Query("SELECT " + scyllaColumns + " FROM products").WithContext(ctx).Iter()

	products := []models.Product{}
	var p models.Product
	var features []string

	for iter.Scan(&p.ID, &p.Name, &p.Type, &p.Description, &p.Price, &p.Color,
		&p.ImageURL, &features, &p.Badge, &p.Discount, &p.CreatedAt) {
		p.Features = models.FeatureList(features)
		products = append(products, p)
		p = models.Product{}
		features = nil
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *ScyllaStore) SaveAll(ctx context.Context, products []models.Product) error {
	// Full-replace : TRUNCATE puis réinsertion — les écrivains concurrents
	// peuvent se marcher dessus, comme dans la variante fichier
	if err := s.session.Query("TRUNCATE products").WithContext(ctx).Exec(); err != nil {
		return err
	}
	for _, p := range products {
		if err := s.Insert(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (s *ScyllaStore) FindByID(ctx context.Context, id int64) (models.Product, error) {
	var p models.Product
	var features []string

	err := s.session.Query("SELECT "+scyllaColumns+" FROM products WHERE id = ?", id).
		WithContext(ctx).
		Scan(&p.ID, &p.Name, &p.Type, &p.Description, &p.Price, &p.Color,
			&p.ImageURL, &features, &p.Badge, &p.Discount, &p.CreatedAt)
	if errors.Is(err, gocql.ErrNotFound) {
		return models.Product{}, ErrNotFound
	}
	if err != nil {
		return models.Product{}, err
	}
	p.Features = models.FeatureList(features)
	return p, nil
}

func (s *ScyllaStore) Insert(ctx context.Context, p models.Product) error {
	return s.session.Query(
		"INSERT INTO products ("+scyllaColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		p.ID, p.Name, p.Type, p.Description, p.Price, p.Color,
		p.ImageURL, []string(p.Features), p.Badge, p.Discount, p.CreatedAt,
	).WithContext(ctx).Exec()
}

func (s *ScyllaStore) UpdateByID(ctx context.Context, id int64, update models.ProductUpdate) (models.Product, error) {
	current, err := s.FindByID(ctx, id)
	if err != nil {
		return models.Product{}, err
	}

	assignments := []string{}
	values := []interface{}{}

	if update.Name != nil {
		assignments = append(assignments, "name = ?")
		values = append(values, *update.Name)
	}
	if update.Type != nil {
		assignments = append(assignments, "type = ?")
		values = append(values, *update.Type)
	}
	if update.Description != nil {
		assignments = append(assignments, "description = ?")
		values = append(values, *update.Description)
	}
	if update.Price != nil {
		assignments = append(assignments, "price = ?")
		values = append(values, *update.Price)
	}
	if update.Color != nil {
		assignments = append(assignments, "color = ?")
		values = append(values, *update.Color)
	}
	if update.ImageURL != nil {
		assignments = append(assignments, "image_url = ?")
		values = append(values, *update.ImageURL)
	}
	if update.Features != nil {
		assignments = append(assignments, "features = ?")
		values = append(values, []string(*update.Features))
	}
	if update.Badge != nil {
		assignments = append(assignments, "badge = ?")
		values = append(values, *update.Badge)
	}
	if update.Discount != nil {
		assignments = append(assignments, "discount = ?")
		values = append(values, *update.Discount)
	}

	if len(assignments) == 0 {
		return current, nil
	}

	values = append(values, id)
	query := "UPDATE products SET " + strings.Join(assignments, ", ") + " WHERE id = ?"
	if err := s.session.Query(query, values...).WithContext(ctx).Exec(); err != nil {
		return models.Product{}, err
	}

	update.ApplyTo(&current)
	return current, nil
}

func (s *ScyllaStore) DeleteByID(ctx context.Context, id int64) (models.Product, bool, error) {
	p, err := s.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return models.Product{}, false, nil
	}
	if err != nil {
		return models.Product{}, false, err
	}

	if err := s.session.Query("DELETE FROM products WHERE id = ?", id).WithContext(ctx).Exec(); err != nil {
		return models.Product{}, false, err
	}
	return p, true, nil
}

// EnsureSchema crée la table products si besoin
func (s *ScyllaStore) EnsureSchema(ctx context.Context) error {
	const ddl = `CREATE TABLE IF NOT EXISTS products (
		id bigint PRIMARY KEY,
		name text,
		type text,
		description text,
		price double,
		color text,
		image_url text,
		features list<text>,
		badge text,
		discount int,
		created_at timestamp
	)`
	q := s.session.Query(ddl).WithContext(ctx)
	defer q.Release()

	// La création de schéma peut mettre quelques secondes à converger
	for i := 0; i < 3; i++ {
		if err := q.Exec(); err == nil {
			return nil
		} else if i == 2 {
			return err
		}
		time.Sleep(time.Second)
	}
	return nil
}

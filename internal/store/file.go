package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Shjra/Shjra-Maps/internal/models"
)

// FileStore persiste le catalogue dans un unique fichier JSON (tableau de
// produits). Chaque écriture réécrit le fichier entier ; le mutex sérialise
// les écrivains du même process, l'écriture passe par un fichier temporaire
// puis un rename pour ne jamais laisser un JSON tronqué.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) LoadAll(ctx context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *FileStore) SaveAll(ctx context.Context, products []models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(products)
}

func (s *FileStore) FindByID(ctx context.Context, id int64) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.loadLocked()
	if err != nil {
		return models.Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrNotFound
}

func (s *FileStore) Insert(ctx context.Context, p models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.loadLocked()
	if err != nil {
		return err
	}
	return s.saveLocked(append(products, p))
}

func (s *FileStore) UpdateByID(ctx context.Context, id int64, update models.ProductUpdate) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.loadLocked()
	if err != nil {
		return models.Product{}, err
	}

	for i := range products {
		if products[i].ID == id {
			update.ApplyTo(&products[i])
			if err := s.saveLocked(products); err != nil {
				return models.Product{}, err
			}
			return products[i], nil
		}
	}
	return models.Product{}, ErrNotFound
}

func (s *FileStore) DeleteByID(ctx context.Context, id int64) (models.Product, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.loadLocked()
	if err != nil {
		return models.Product{}, false, err
	}

	for i, p := range products {
		if p.ID == id {
			remaining := append(products[:i:i], products[i+1:]...)
			if err := s.saveLocked(remaining); err != nil {
				return models.Product{}, false, err
			}
			return p, true, nil
		}
	}
	return models.Product{}, false, nil
}

func (s *FileStore) loadLocked() ([]models.Product, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Product{}, nil
		}
		return nil, fmt.Errorf("lecture %s: %w", s.path, err)
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

func (s *FileStore) saveLocked(products []models.Product) error {
	if products == nil {
		products = []models.Product{}
	}

	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".products-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

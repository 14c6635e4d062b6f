// Package client porte la logique du front découplée du rendu : état de
// session explicite, appels API, boucle de recherche débouncée et polling
// du catalogue.
package client

import (
	"sync"

	"github.com/Shjra/Shjra-Maps/internal/models"
)

// State remplace les variables globales historiques (isLoggedIn, currentUser,
// token, products) par un objet de session explicite injecté partout
type State struct {
	mu       sync.RWMutex
	loggedIn bool
	user     models.User
	token    string
	products []models.Product
	adminID  string
}

func NewState(adminID string) *State {
	return &State{adminID: adminID}
}

// SetSession enregistre le credential et le principal après un login vérifié
func (s *State) SetSession(user models.User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loggedIn = true
	s.user = user
	s.token = token
}

// ClearSession repasse en état déconnecté (token expiré, logout)
func (s *State) ClearSession() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loggedIn = false
	s.user = models.User{}
	s.token = ""
}

func (s *State) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loggedIn
}

func (s *State) CurrentUser() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, s.loggedIn
}

func (s *State) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsStaff vérifie le principal contre l'ID admin injecté (plus de constante
// dupliquée côté client)
func (s *State) IsStaff() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loggedIn && s.user.ID == s.adminID
}

func (s *State) SetProducts(products []models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
}

// Products retourne une copie de la liste courante
func (s *State) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

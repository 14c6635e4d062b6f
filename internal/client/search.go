package client

import (
	"context"
	"sync"
	"time"
)

// DebounceDelay est le délai avant d'exécuter une recherche après la dernière
// frappe dans le champ texte.
const DebounceDelay = 500 * time.Millisecond

// Searcher est la partie de l'API utilisée par le contrôleur de recherche.
type Searcher interface {
	Search(ctx context.Context, filters FilterState, page int) (SearchResult, error)
}

// SearchController pilote la boucle de recherche : debounce sur le champ
// texte, dispatch immédiat sur les autres filtres, et garde anti-réponses
// obsolètes par numéro de séquence.
type SearchController struct {
	mu      sync.Mutex
	api     Searcher
	filters FilterState
	page    int
	seq     uint64
	applied uint64
	timer   *time.Timer
	delay   time.Duration
	onApply func(SearchResult)
	onError func(error)
	closed  bool
}

func NewSearchController(api Searcher, onApply func(SearchResult), onError func(error)) *SearchController {
	if onError == nil {
		onError = func(error) {}
	}
	return &SearchController{
		api:     api,
		page:    1,
		delay:   DebounceDelay,
		onApply: onApply,
		onError: onError,
	}
}

// SetQuery enregistre le texte tapé et (re)démarre le debounce. Chaque frappe
// repousse le tir : une seule recherche part après la dernière.
func (s *SearchController) SetQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.filters.Query = q
	s.page = 1
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.fire)
}

// SetType change le filtre de type et relance immédiatement
func (s *SearchController) SetType(t string) {
	s.setImmediate(func(f *FilterState) { f.Type = t })
}

// SetBadge change le filtre de badge et relance immédiatement
func (s *SearchController) SetBadge(b string) {
	s.setImmediate(func(f *FilterState) { f.Badge = b })
}

// SetPriceRange change la fourchette de prix et relance immédiatement
func (s *SearchController) SetPriceRange(min, max string) {
	s.setImmediate(func(f *FilterState) {
		f.MinPrice = min
		f.MaxPrice = max
	})
}

// SetDiscountOnly bascule le filtre promo et relance immédiatement
func (s *SearchController) SetDiscountOnly(on bool) {
	s.setImmediate(func(f *FilterState) { f.DiscountOnly = on })
}

// SetSort change l'ordre de tri et relance immédiatement
func (s *SearchController) SetSort(sortKey string) {
	s.setImmediate(func(f *FilterState) { f.Sort = sortKey })
}

// GoToPage navigue vers une page en conservant les filtres courants
func (s *SearchController) GoToPage(page int) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if page < 1 {
		page = 1
	}
	s.page = page
	s.cancelTimerLocked()
	s.mu.Unlock()
	s.fire()
}

// Reset vide tous les filtres et revient à la première page
func (s *SearchController) Reset() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.filters = FilterState{}
	s.page = 1
	s.cancelTimerLocked()
	s.mu.Unlock()
	s.fire()
}

// Filters retourne l'état de filtre courant
func (s *SearchController) Filters() (FilterState, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters, s.page
}

// Stop annule tout debounce en attente. Les réponses encore en vol seront
// ignorées.
func (s *SearchController) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.cancelTimerLocked()
	s.seq++
	s.applied = s.seq
}

func (s *SearchController) setImmediate(apply func(*FilterState)) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	apply(&s.filters)
	s.page = 1
	s.cancelTimerLocked()
	s.mu.Unlock()
	s.fire()
}

func (s *SearchController) cancelTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// fire lance une recherche avec un numéro de séquence. La comparaison se fait
// au moment d'appliquer le résultat : une réponse dépassée entre-temps est
// jetée, jamais affichée.
func (s *SearchController) fire() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.seq++
	seq := s.seq
	filters := s.filters
	page := s.page
	s.mu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		result, err := s.api.Search(ctx, filters, page)

		s.mu.Lock()
		if s.closed || seq <= s.applied {
			s.mu.Unlock()
			return
		}
		s.applied = seq
		s.mu.Unlock()

		if err != nil {
			s.onError(err)
			return
		}
		if s.onApply != nil {
			s.onApply(result)
		}
	}()
}

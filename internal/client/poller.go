package client

import (
	"context"
	"time"

	"github.com/Shjra/Shjra-Maps/internal/models"
)

// PollInterval est la cadence de rafraîchissement du catalogue.
const PollInterval = 3 * time.Second

// ProductFetcher est la partie de l'API utilisée par le poller.
type ProductFetcher interface {
	FetchProducts(ctx context.Context) ([]models.Product, error)
}

// Poller rafraîchit périodiquement le catalogue tant que la session est
// active. Stop arrête la boucle sans fuite de goroutine.
type Poller struct {
	api      ProductFetcher
	state    *State
	interval time.Duration
	onUpdate func([]models.Product)
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewPoller(api ProductFetcher, state *State, onUpdate func([]models.Product)) *Poller {
	return &Poller{
		api:      api,
		state:    state,
		interval: PollInterval,
		onUpdate: onUpdate,
	}
}

// Start lance la boucle de polling
func (p *Poller) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})

	go func() {
		defer close(p.done)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.refresh(ctx)
			}
		}
	}()
}

// Stop arrête la boucle et attend sa sortie
func (p *Poller) Stop() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
	p.cancel = nil
}

func (p *Poller) refresh(ctx context.Context) {
	if !p.state.LoggedIn() {
		return
	}

	products, err := p.api.FetchProducts(ctx)
	if err != nil {
		// échec silencieux : le prochain tick réessaiera
		return
	}

	p.state.SetProducts(products)
	if p.onUpdate != nil {
		p.onUpdate(products)
	}
}

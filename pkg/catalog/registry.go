package catalog

import (
	"context"
	"sync"

	"github.com/glorpus-work/hymod/pkg/errors"
	"github.com/glorpus-work/hymod/pkg/model"
)

// Registry holds one client per provider and tracks which one is active.
// It is the credential sink of the settings store: Reconfigure hands the
// api key to the active provider's client and clears it everywhere else.
type Registry struct {
	mu      sync.RWMutex
	clients map[model.Provider]Client
	active  model.Provider
}

// NewRegistry registers clients. The first one is active until Reconfigure.
func NewRegistry(clients ...Client) *Registry {
	r := &Registry{clients: make(map[model.Provider]Client, len(clients))}
	for _, c := range clients {
		if r.active == "" {
			r.active = c.Provider()
		}
		r.clients[c.Provider()] = c
	}
	return r
}

// Reconfigure selects provider and applies credential to it.
func (r *Registry) Reconfigure(provider model.Provider, credential string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.active = provider
	for p, c := range r.clients {
		if p == provider {
			c.SetCredential(credential)
		} else {
			c.SetCredential("")
		}
	}
}

// Active returns the active provider's client.
func (r *Registry) Active() (Client, error) {
	r.mu.RLock()
	provider := r.active
	r.mu.RUnlock()
	return r.Client(provider)
}

// Client returns the client registered for provider.
func (r *Registry) Client(provider model.Provider) (Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.clients[provider]
	if !ok {
		return nil, errors.Wrapf(errors.ErrConfig, "no client registered for provider %q", provider)
	}
	return c, nil
}

// Lookup fetches one item from the provider that owns it.
func (r *Registry) Lookup(ctx context.Context, provider model.Provider, id string) (model.CatalogItem, error) {
	c, err := r.Client(provider)
	if err != nil {
		return model.CatalogItem{}, err
	}
	return c.GetItem(ctx, id)
}

// Fetch downloads a package through the provider that listed it.
func (r *Registry) Fetch(ctx context.Context, provider model.Provider, url string) ([]byte, error) {
	c, err := r.Client(provider)
	if err != nil {
		return nil, err
	}
	return c.Fetch(ctx, url)
}

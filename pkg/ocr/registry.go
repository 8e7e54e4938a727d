package ocr

import "sync"

// Registry holds capability-tagged providers keyed by name. Selection stays
// the same regardless of how many providers exist: look up by name, then
// check the requested action against the provider's capability record.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewRegistry creates an empty provider registry
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register adds a provider under its own name, replacing any previous
// registration for that name.
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[p.Name()] = p
}

// Get returns the provider registered under name.
func (r *Registry) Get(name string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[name]
	if !ok {
		return nil, ocrErrors.New(ErrUnknownProvider).WithDetail("provider", name)
	}
	return p, nil
}

// Select returns the named provider after verifying it supports the
// requested action.
func (r *Registry) Select(name string, action Action) (Provider, error) {
	p, err := r.Get(name)
	if err != nil {
		return nil, err
	}

	if !p.Capabilities().Allows(action) {
		return nil, ocrErrors.New(ErrUnsupportedAction).
			WithDetail("provider", name).
			WithDetail("action", string(action))
	}

	return p, nil
}

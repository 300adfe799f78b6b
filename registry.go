package waku

import "sync"

// Registry holds the process-wide single-node claim. The native engine
// supports exactly one node per process, so New refuses to construct a
// second node while a claim is held. The default registry backs New;
// independent registries can be built for composition and tests via
// NewRegistry and NewWithEngine.
type Registry struct {
	mu   sync.Mutex
	busy bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// acquire takes the claim, failing with ErrAlreadyRunning when it is
// already held. The check-and-set is atomic: a concurrent loser fails
// deterministically before any engine call is made.
func (r *Registry) acquire() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.busy {
		return ErrAlreadyRunning
	}
	r.busy = true
	return nil
}

// release frees the claim. Releasing an unheld claim is a no-op.
func (r *Registry) release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.busy = false
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the registry backing New.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

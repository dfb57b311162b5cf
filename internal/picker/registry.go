package picker

import (
	"errors"
	"fmt"
	"sync"
)

// ErrSessionActive is returned when a session is started while another one holds the lease.
var ErrSessionActive = errors.New("picker session already active")

// DefaultRegistry is the process-wide registry used when a session is not given its own.
var DefaultRegistry = NewRegistry()

// Registry allows at most one active session at a time.
type Registry struct {
	mu    sync.Mutex
	owner string
	lease *Lease
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// IsActive reports whether a lease is currently held.
func (r *Registry) IsActive() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lease != nil
}

// Owner returns the id of the current lease holder, or "".
func (r *Registry) Owner() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.owner
}

// Acquire takes the lease for owner.
func (r *Registry) Acquire(owner string) (*Lease, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.lease != nil {
		return nil, fmt.Errorf("%w: held by %s", ErrSessionActive, r.owner)
	}
	r.owner = owner
	r.lease = &Lease{registry: r}
	return r.lease, nil
}

func (r *Registry) release(l *Lease) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.lease == l {
		r.lease = nil
		r.owner = ""
	}
}

// Lease is the right to run a session. Release is idempotent.
type Lease struct {
	registry *Registry
	once     sync.Once
}

// Release gives the lease back to its registry.
func (l *Lease) Release() {
	if l == nil {
		return
	}
	l.once.Do(func() {
		l.registry.release(l)
	})
}

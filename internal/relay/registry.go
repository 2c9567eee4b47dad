package relay

import (
	"sync"
)

// Registry maps a user id to its single live connection. A later Register
// for the same user silently replaces the prior entry; the displaced
// connection is not notified and keeps running until it closes on its own.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]*Client
}

func NewRegistry() *Registry {
	return &Registry{
		conns: make(map[string]*Client),
	}
}

func (r *Registry) Register(userId string, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.conns[userId] = c
}

// Unregister removes the entry for userId only if c is still the mapped
// connection. A stale disconnect therefore never evicts a newer
// registration for the same user.
func (r *Registry) Unregister(userId string, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cur, ok := r.conns[userId]; ok && cur == c {
		delete(r.conns, userId)
	}
}

func (r *Registry) Lookup(userId string) (*Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.conns[userId]
	return c, ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.conns)
}

// Package obstacles classifies opaque collision targets into named obstacle
// categories. Level construction registers bodies; controllers query them
// when a contact arrives.
package obstacles

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/treasure-run/internal/core"
)

// Category is an obstacle classification label.
type Category string

const (
	CategoryEnemy  Category = "enemy"
	CategorySpikes Category = "spikes"
)

// ErrDuplicate is returned when a (category, body) pair is registered twice.
var ErrDuplicate = errors.New("obstacle already registered")

// Registry is the set of registered (category, body) pairs.
type Registry struct {
	entries map[string]core.EntityID
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]core.EntityID)}
}

func key(c Category, id core.EntityID) string {
	return fmt.Sprintf("%s-%d", c, id)
}

// Add registers body id under category c. Registering the same pair twice
// returns ErrDuplicate; it points at a level being built twice.
func (r *Registry) Add(c Category, id core.EntityID) error {
	k := key(c, id)
	if _, exists := r.entries[k]; exists {
		return fmt.Errorf("obstacles: %w with key %s", ErrDuplicate, k)
	}
	r.entries[k] = id
	return nil
}

// Is reports whether body id is registered under category c.
func (r *Registry) Is(c Category, id core.EntityID) bool {
	_, ok := r.entries[key(c, id)]
	return ok
}

// Remove forgets the pair, if present.
func (r *Registry) Remove(c Category, id core.EntityID) {
	delete(r.entries, key(c, id))
}

// Len returns the number of registered pairs.
func (r *Registry) Len() int {
	return len(r.entries)
}

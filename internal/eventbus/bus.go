// Package eventbus provides the synchronous publish/subscribe bus that lets
// the player, enemies and HUD coordinate without holding references to each
// other.
//
// One Bus is created per game session and passed to everything that needs it.
// Delivery is synchronous and re-entrant: a handler may emit, subscribe or
// unsubscribe while an emission is in flight. A Bus is not safe for concurrent
// use; it lives inside the single-threaded game tick.
package eventbus

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"
)

// Handler receives an event.
type Handler func(Event)

// Token identifies one registration. Every call to On returns a fresh token,
// so identical registrations stay independent.
type Token uint64

type subscription struct {
	token   Token
	owner   any
	fn      Handler
	removed bool
}

// Bus is a named-event publish/subscribe hub.
type Bus struct {
	subs      map[Kind][]*subscription
	nextToken Token
	logger    *log.Logger
}

// New creates an empty bus. A nil logger discards diagnostics.
func New(logger *log.Logger) *Bus {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Bus{
		subs:   make(map[Kind][]*subscription),
		logger: logger,
	}
}

// On registers fn for kind on behalf of owner and returns its token.
// owner identifies the subscriber for Off and OffOwner; it must be comparable
// (a pointer to the subscribing entity is typical).
func (b *Bus) On(kind Kind, owner any, fn Handler) Token {
	b.nextToken++
	b.subs[kind] = append(b.subs[kind], &subscription{
		token: b.nextToken,
		owner: owner,
		fn:    fn,
	})
	return b.nextToken
}

// Subscribe registers a handler typed to a single event kind.
func Subscribe[E Event](b *Bus, owner any, fn func(E)) Token {
	var zero E
	return b.On(zero.Kind(), owner, func(e Event) {
		if typed, ok := e.(E); ok {
			fn(typed)
		}
	})
}

// Off removes the registration matching kind, token and owner.
// Unknown registrations are ignored: teardown order across entities is not
// guaranteed.
func (b *Bus) Off(kind Kind, token Token, owner any) {
	list := b.subs[kind]
	for i, s := range list {
		if s.token == token && s.owner == owner {
			s.removed = true
			b.subs[kind] = slices.Delete(slices.Clone(list), i, i+1)
			return
		}
	}
}

// OffOwner removes every registration made by owner and returns how many
// were removed.
func (b *Bus) OffOwner(owner any) int {
	removed := 0
	for kind, list := range b.subs {
		kept := make([]*subscription, 0, len(list))
		for _, s := range list {
			if s.owner == owner {
				s.removed = true
				removed++
				continue
			}
			kept = append(kept, s)
		}
		b.subs[kind] = kept
	}
	return removed
}

// Emit synchronously delivers e to every handler registered for its kind, in
// registration order. The subscriber list is snapshotted first: handlers added
// during the emission are not called for it, and handlers removed before their
// turn are skipped.
func (b *Bus) Emit(e Event) {
	// Lists are replaced, never edited in place, so the current slice is a
	// stable snapshot.
	snapshot := b.subs[e.Kind()]
	if len(snapshot) == 0 {
		return
	}
	b.logger.Debug("emit", "event", e.Kind(), "subscribers", len(snapshot))
	for _, s := range snapshot {
		if s.removed {
			continue
		}
		s.fn(e)
	}
}

// Count returns the number of live registrations for kind.
func (b *Bus) Count(kind Kind) int {
	return len(b.subs[kind])
}

// Reset drops every registration. It is the teardown hook between game
// sessions; anything still subscribed at that point was not cleaned up by its
// owner and is reported.
func (b *Bus) Reset() {
	stale := 0
	for _, list := range b.subs {
		for _, s := range list {
			s.removed = true
		}
		stale += len(list)
	}
	if stale > 0 {
		b.logger.Warn("reset dropped stale subscriptions", "count", stale)
	}
	b.subs = make(map[Kind][]*subscription)
}

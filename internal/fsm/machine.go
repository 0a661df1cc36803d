// Package fsm implements the named-state machine that drives every actor.
//
// A Machine is bound to one owner. States are plain records of optional
// callbacks that receive the owner explicitly, so a controller composes its
// transition table at construction time without inheritance or method binding.
// Machines are not safe for concurrent use; they run inside the game tick.
package fsm

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultCascadeLimit bounds how deeply OnEnter callbacks may chain SetState.
const DefaultCascadeLimit = 16

var (
	// ErrDuplicateState is the panic value (wrapped) for registering a name twice.
	ErrDuplicateState = errors.New("state already registered")

	// ErrUnknownState is returned when transitioning to a name that was never registered.
	ErrUnknownState = errors.New("unknown state")

	// ErrCascadeTooDeep is returned when nested transitions exceed the cascade limit.
	ErrCascadeTooDeep = errors.New("transition cascade too deep")
)

// State holds the callbacks of one named state. Every field is optional.
type State[C any] struct {
	// OnEnter runs after the machine switched to this state.
	// Extra SetState arguments are passed through unchanged.
	OnEnter func(owner C, args ...any)

	// OnUpdate runs once per tick while this state is current.
	OnUpdate func(owner C, dt time.Duration)

	// OnExit runs before the machine leaves this state.
	OnExit func(owner C)
}

// Machine is a finite-state machine over named states of owner type C.
type Machine[C any] struct {
	id         string
	owner      C
	states     map[string]State[C]
	current    string
	hasCurrent bool

	depth    int
	maxDepth int
	logger   *log.Logger
	observer func(from, to string)
}

// Option configures a Machine.
type Option func(*options)

type options struct {
	logger   *log.Logger
	maxDepth int
	observer func(from, to string)
}

// WithLogger sets the logger used for transition diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithCascadeLimit overrides DefaultCascadeLimit.
func WithCascadeLimit(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDepth = n
		}
	}
}

// WithObserver registers a hook called after every successful transition,
// before the incoming state's OnEnter runs. from is empty for the first transition.
func WithObserver(fn func(from, to string)) Option {
	return func(o *options) {
		o.observer = fn
	}
}

// New creates an empty machine owned by owner. id names the machine in
// diagnostics (for example "player" or "enemy-7").
func New[C any](owner C, id string, opts ...Option) *Machine[C] {
	o := options{
		logger:   log.New(io.Discard),
		maxDepth: DefaultCascadeLimit,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Machine[C]{
		id:       id,
		owner:    owner,
		states:   make(map[string]State[C]),
		maxDepth: o.maxDepth,
		logger:   o.logger.With("fsm", id),
		observer: o.observer,
	}
}

// AddState registers a state and returns the machine for chaining.
// Panics if name is already registered: a duplicate is a programming error
// in the controller's state table and must surface at startup.
func (m *Machine[C]) AddState(name string, st State[C]) *Machine[C] {
	if _, exists := m.states[name]; exists {
		panic(fmt.Errorf("fsm %s: %w: %q", m.id, ErrDuplicateState, name))
	}
	m.states[name] = st
	return m
}

// SetState transitions to name, passing args to the incoming OnEnter.
//
// Requesting the current state is a logged no-op. Requesting an unregistered
// state returns ErrUnknownState and leaves the machine untouched. OnEnter may
// call SetState again; the nested transition completes before this call returns.
func (m *Machine[C]) SetState(name string, args ...any) error {
	if m.hasCurrent && name == m.current {
		m.logger.Warn("ignoring transition to current state", "state", name)
		return nil
	}

	next, ok := m.states[name]
	if !ok {
		return fmt.Errorf("fsm %s: %w %q", m.id, ErrUnknownState, name)
	}

	if m.depth >= m.maxDepth {
		return fmt.Errorf("fsm %s: %w (limit %d, target %q)", m.id, ErrCascadeTooDeep, m.maxDepth, name)
	}
	m.depth++
	defer func() { m.depth-- }()

	from := ""
	if m.hasCurrent {
		from = m.current
		if prev := m.states[m.current]; prev.OnExit != nil {
			prev.OnExit(m.owner)
		}
	}

	m.current = name
	m.hasCurrent = true
	m.logger.Debug("transition", "from", from, "to", name)
	if m.observer != nil {
		m.observer(from, name)
	}

	if next.OnEnter != nil {
		next.OnEnter(m.owner, args...)
	}
	return nil
}

// MustSetState is SetState for callers that treat an invalid transition as fatal.
func (m *Machine[C]) MustSetState(name string, args ...any) {
	if err := m.SetState(name, args...); err != nil {
		panic(err)
	}
}

// Update runs the current state's OnUpdate with the time elapsed since the
// previous tick. Does nothing before the first transition.
func (m *Machine[C]) Update(dt time.Duration) {
	if !m.hasCurrent {
		return
	}
	if st := m.states[m.current]; st.OnUpdate != nil {
		st.OnUpdate(m.owner, dt)
	}
}

// IsCurrentState reports whether name is the current state.
func (m *Machine[C]) IsCurrentState(name string) bool {
	return m.hasCurrent && m.current == name
}

// Current returns the current state name, or "" before the first transition.
func (m *Machine[C]) Current() string {
	return m.current
}

// Owner returns the entity the machine governs.
func (m *Machine[C]) Owner() C {
	return m.owner
}

// ID returns the diagnostic name of the machine.
func (m *Machine[C]) ID() string {
	return m.id
}

// States returns the registered state names in sorted order.
func (m *Machine[C]) States() []string {
	names := make([]string, 0, len(m.states))
	for name := range m.states {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

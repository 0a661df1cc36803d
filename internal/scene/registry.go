package scene

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vovakirdan/treasure-run/internal/core"
)

// Scene is one screen of the game. Scenes contain pure logic with no
// Bubble Tea dependency; the platform handles input mapping, timing and
// terminal output.
type Scene interface {
	// Name returns the identifier the scene is registered under.
	Name() string

	// Enter builds the scene. Called every time it becomes current.
	Enter(d *Director) error

	// Update advances the scene by dt with this tick's input.
	Update(in core.InputFrame, dt time.Duration)

	// Render draws the scene into the pre-cleared screen buffer.
	Render(dst *core.Screen)

	// Exit releases everything the scene holds on the shared bus.
	Exit()
}

// Factory is a function that creates a new instance of a scene.
type Factory func() Scene

var (
	factories = make(map[string]Factory)
	mu        sync.RWMutex
)

// Register adds a scene factory to the registry.
// Typically called from an init() function.
// Panics if a scene with the same name is already registered.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("scene: %q already registered", name))
	}
	factories[name] = f
}

// List returns the names of all registered scenes, sorted.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create instantiates a new scene by its name.
// Returns an error if the name is not registered.
func Create(name string) (Scene, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("scene: unknown scene %q", name)
	}
	return f(), nil
}

// Exists checks if a scene with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}

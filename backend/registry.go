package backend

import (
	"fmt"
	"sync"

	"github.com/gogpu/blit/render"
)

// registry holds registered device factories.
var (
	registryMu sync.RWMutex
	factories  = make(map[string]DeviceFactory)
	// Priority order for selection (first available wins).
	priority = []string{BackendNative, BackendNull}
)

// Register registers a device factory with the given name.
// This is typically called from init() functions in backend packages.
// If a factory with the same name is already registered, it is replaced.
func Register(name string, factory DeviceFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Available returns a list of registered backend names.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

// Get creates a device from the named backend.
func Get(name string) (render.Device, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	return factory()
}

// Default returns a device from the best available backend.
// Backends are tried in priority order; the first one that
// initializes successfully wins.
func Default() (render.Device, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	var firstErr error
	for _, name := range priority {
		factory, ok := factories[name]
		if !ok {
			continue
		}
		dev, err := factory()
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		return dev, nil
	}

	// Fallback: try anything registered outside the priority list.
	for name, factory := range factories {
		if inPriority(name) {
			continue
		}
		dev, err := factory()
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		return dev, nil
	}

	if firstErr != nil {
		return nil, firstErr
	}
	return nil, ErrBackendNotAvailable
}

func inPriority(name string) bool {
	for _, p := range priority {
		if p == name {
			return true
		}
	}
	return false
}

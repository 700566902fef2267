package llm

import "fmt"

// BackendFactory creates a new backend instance.
type BackendFactory func() (Backend, error)

// global registry of available backends, filled by provider init()s
var backends = make(map[string]BackendFactory)

// RegisterBackend registers a backend factory under the given name.
func RegisterBackend(name string, factory BackendFactory) {
	backends[name] = factory
}

// NewBackend instantiates the named backend.
func NewBackend(name string) (Backend, error) {
	factory, exists := backends[name]
	if !exists {
		return nil, fmt.Errorf("unsupported reasoning provider: %s", name)
	}
	return factory()
}

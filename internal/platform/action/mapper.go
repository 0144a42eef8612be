package action

import (
	"fmt"
	"maps"
	"slices"
)

// Mapper holds named actions a service runs as pre-hooks before it talks to storage.
// The service keeps doing collaboration, the aggregate keeps the logic, and the mapper
// is the seam between them: production code registers the real logic under a name and
// tests register a stand-in under the same name.
type Mapper struct {
	actions map[string]any
}

func (m *Mapper) Add(name string, fn any) *Mapper {
	if m.actions == nil {
		m.actions = make(map[string]any)
	}

	m.actions[name] = fn

	return m
}

func (m *Mapper) Get(name string) (any, error) {
	v, ok := m.actions[name]
	if !ok {
		return nil, fmt.Errorf("no action found for: %s", name)
	}

	return v, nil
}

// All returns the registered names in sorted order.
func (m *Mapper) All() []string {
	return slices.Sorted(maps.Keys(m.actions))
}

// Lookup fetches the action by name and asserts it has the signature T.
func Lookup[T any](m *Mapper, name string) (T, error) {
	var zero T

	doer, err := m.Get(name)
	if err != nil {
		return zero, err
	}

	do, ok := doer.(T)
	if !ok {
		return zero, fmt.Errorf("action %q is a %T, not a %T", name, doer, zero)
	}

	return do, nil
}

package site

import (
	"fmt"
	"sort"

	"github.com/hejijunhao/dailycheckin/internal/runner"
)

// Constructor is a function that creates a new Job for a site.
type Constructor func() runner.Job

var registry = map[string]Constructor{}

// Register adds a site constructor under the given name.
func Register(name string, ctor Constructor) {
	registry[name] = ctor
}

// Get returns the constructor for the given site name.
func Get(name string) (Constructor, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown site: %q (available: %v)", name, Names())
	}
	return ctor, nil
}

// Names returns the registered site names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

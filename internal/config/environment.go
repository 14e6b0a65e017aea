package config

import (
	"os"
	"slices"

	"github.com/caarlos0/env/v11"
)

// Environment is a read-only snapshot of environment variables, name to value.
// It is captured once at startup and handed to everything that reads
// configuration, so tests can supply their own mapping instead of touching the
// process environment.
type Environment map[string]string

// LookupEnvironment captures the current process environment.
func LookupEnvironment() Environment {
	return env.ToMap(os.Environ())
}

// Get returns the value stored under name, or "" when it is not set.
func (e Environment) Get(name string) string {
	return e[name]
}

// Names returns every variable name in the snapshot in sorted order.
func (e Environment) Names() []string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

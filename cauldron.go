// Package cauldron is a runtime dependency-resolution engine. A Container maps
// abstract string keys to bindings whose concrete value is a factory, a class
// reference, or a pre-built object. Class constructors are discovered by
// reflection, compiled into reusable construction plans, and executed under a
// shared (singleton) or transient lifecycle.
//
// A Container is owned by a single goroutine. It performs no internal locking;
// embed it behind your own synchronization if it must be shared.
package cauldron

import "reflect"

// Factory builds a concrete value from the container. Factories are opaque to
// the resolver: their dependencies are never introspected.
type Factory func(c *Container) (any, error)

// New creates an empty container.
func New(opts ...Option) *Container {
	c := &Container{
		bindings: make(map[string]*binding),
		classes:  make(map[string]reflect.Type),
		hooks:    newHookChain(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

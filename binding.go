package cauldron

import (
	"fmt"
	"reflect"
	"sort"
)

// DependencyKind tags a DependencyDescriptor.
type DependencyKind int

const (
	// ClassDependency is an edge to another binding, resolved through the
	// registry by abstract key.
	ClassDependency DependencyKind = iota

	// LiteralDependency is a plain parameter satisfied by its declared default.
	LiteralDependency

	// ContainerDependency is a *Container parameter, satisfied with the
	// resolving container itself rather than a registered binding.
	ContainerDependency
)

// String returns a human-readable representation of the kind.
func (k DependencyKind) String() string {
	switch k {
	case ClassDependency:
		return "class"
	case LiteralDependency:
		return "literal"
	default:
		return "container"
	}
}

// DependencyDescriptor describes one constructor parameter of a class binding.
type DependencyDescriptor struct {
	Kind  DependencyKind
	Class string // abstract key of the dependency, set for ClassDependency
	Value any    // default value, set for LiteralDependency

	field int          // struct field index, -1 for constructor parameters
	typ   reflect.Type // parameter type, used to auto-bind class edges
}

// String returns a human-readable representation of the descriptor.
func (d DependencyDescriptor) String() string {
	switch d.Kind {
	case ClassDependency:
		return fmt.Sprintf("class(%s)", d.Class)
	case ContainerDependency:
		return "container"
	default:
		return fmt.Sprintf("literal(%v)", d.Value)
	}
}

// concreteKind discriminates the three origins of a concrete value.
type concreteKind int

const (
	concreteFactory concreteKind = iota
	concreteClass
	concreteInstance
)

func (k concreteKind) String() string {
	switch k {
	case concreteFactory:
		return "factory"
	case concreteClass:
		return "class"
	default:
		return "instance"
	}
}

// binding is the registry record for one abstract key.
type binding struct {
	abstract string
	kind     concreteKind
	shared   bool

	factory Factory    // set for concreteFactory
	class   *classInfo // set for concreteClass

	// dependencies is fully populated or nil, never partial. It is cleared
	// when an upstream binding is replaced and recomputed on next resolution.
	dependencies []DependencyDescriptor

	// dependants holds the abstract keys whose dependency lists include this
	// binding. Keys rather than record pointers: no aliasing between the
	// registry arena and cached plans, and invalidation stays a map walk.
	dependants map[string]struct{}

	// plan is the compiled construction plan, nil until first resolution or
	// after invalidation.
	plan plan

	state lifecycle
}

// describeConcrete renders the concrete origin for snapshots.
func (b *binding) describeConcrete() string {
	switch b.kind {
	case concreteClass:
		return fmt.Sprintf("class %s", b.class)
	case concreteInstance:
		return fmt.Sprintf("instance %T", b.state.instance)
	default:
		return "factory"
	}
}

// BindingSnapshot is a read-only view of a binding record.
type BindingSnapshot struct {
	// Abstract is the key the binding is registered under.
	Abstract string

	// Lifecycle is "shared" or "transient".
	Lifecycle string

	// Concrete describes the origin of the concrete value, e.g.
	// "class cauldron.Circle", "factory", "instance *cauldron.Config".
	Concrete string

	// Dependencies is the resolved constructor parameter list, nil while the
	// binding has not been introspected or after invalidation.
	Dependencies []DependencyDescriptor

	// Dependants lists the abstract keys that depend on this binding, sorted.
	Dependants []string

	// Resolved reports whether a shared instance has been materialized.
	Resolved bool

	// Compiled reports whether a construction plan is cached.
	Compiled bool
}

// snapshot builds the read-only view of b.
func (b *binding) snapshot() BindingSnapshot {
	var deps []DependencyDescriptor
	if b.dependencies != nil {
		deps = make([]DependencyDescriptor, len(b.dependencies))
		copy(deps, b.dependencies)
	}

	dependants := make([]string, 0, len(b.dependants))
	for key := range b.dependants {
		dependants = append(dependants, key)
	}
	sort.Strings(dependants)

	return BindingSnapshot{
		Abstract:     b.abstract,
		Lifecycle:    lifecycleName(b.shared),
		Concrete:     b.describeConcrete(),
		Dependencies: deps,
		Dependants:   dependants,
		Resolved:     b.shared && b.state.created,
		Compiled:     b.plan != nil,
	}
}

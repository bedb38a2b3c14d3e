package cauldron

import (
	"fmt"
	"reflect"

	logger "github.com/xraph/go-utils/log"
)

// Container is the binding registry. It owns every binding record and exposes
// them only through its operations; no collaborator mutates a record directly.
//
// A Container assumes one logical owner goroutine (a per-request or
// per-process container). It performs no internal locking.
type Container struct {
	bindings map[string]*binding

	// classes indexes struct types by abstract key so string class references
	// and self-binding work without a class loader.
	classes map[string]reflect.Type

	hooks         *hookChain
	log           logger.Logger
	keepAutoBound bool
}

// Bind registers abstract with the given concrete value.
//
// The concrete may be:
//   - nil: abstract self-binds to the class indexed under its own key
//   - a Factory: opaque, its dependencies are never introspected
//   - a reflect.Type or a string class name: a class reference, introspected
//     immediately to validate instantiability
//   - any other function: a constructor whose parameters are dependencies
//   - any other value: a pre-built instance, which forces shared lifecycle
//
// Rebinding replaces the record atomically and marks the cached plans of
// direct dependants stale.
func (c *Container) Bind(abstract string, concrete any, shared bool) error {
	if abstract == "" {
		return fmt.Errorf("abstract key cannot be empty")
	}

	b, err := c.newBinding(abstract, concrete, shared)
	if err != nil {
		return err
	}

	c.rebind(abstract, b)
	c.hooks.afterBind(abstract)

	if c.log != nil {
		c.log.Debug(fmt.Sprintf("bound '%s' (%s, %s)", abstract, b.kind, lifecycleName(shared)))
	}

	return nil
}

// Resolve returns the value bound under abstract, constructing it according to
// the binding's lifecycle. Resolution of an unregistered key is surfaced as an
// error, never auto-created. A failed resolution leaves no partial state: the
// default bindings auto-created for dependency classes are rolled back.
func (c *Container) Resolve(abstract string) (any, error) {
	if err := c.hooks.beforeResolve(abstract); err != nil {
		return nil, err
	}

	rc := &resolveContext{}

	value, err := c.resolve(abstract, rc)
	if err != nil {
		c.rollback(rc)
	}

	if hookErr := c.hooks.afterResolve(abstract, value, err); hookErr != nil {
		return nil, hookErr
	}

	return value, err
}

// Make binds abstract to concrete and resolves it in one step.
func (c *Container) Make(abstract string, concrete any, shared bool) (any, error) {
	if err := c.Bind(abstract, concrete, shared); err != nil {
		return nil, err
	}

	return c.Resolve(abstract)
}

// Instance registers a pre-built object under abstract. Instance bindings are
// always shared and identity-stable. The value is returned for chaining.
// Panics if abstract is empty.
func (c *Container) Instance(abstract string, value any) any {
	if abstract == "" {
		panic("cauldron: abstract key cannot be empty")
	}

	b := &binding{abstract: abstract, kind: concreteInstance, shared: true}
	b.state.freeze(value)

	c.rebind(abstract, b)
	c.hooks.afterBind(abstract)

	return value
}

// Has reports whether abstract is registered. It never triggers resolution.
func (c *Container) Has(abstract string) bool {
	_, ok := c.bindings[abstract]

	return ok
}

// Unbind removes the binding and its cached plan. Direct dependants are
// invalidated so a stale instance is never silently served; they will fail or
// re-resolve on their next use.
func (c *Container) Unbind(abstract string) {
	if _, ok := c.bindings[abstract]; !ok {
		return
	}

	c.invalidateDependants(abstract)
	delete(c.bindings, abstract)

	if c.log != nil {
		c.log.Debug(fmt.Sprintf("unbound '%s'", abstract))
	}
}

// Snapshot returns a read-only view of the binding registered under abstract.
func (c *Container) Snapshot(abstract string) (BindingSnapshot, error) {
	b, ok := c.bindings[abstract]
	if !ok {
		return BindingSnapshot{}, ErrBindingNotFound(abstract)
	}

	return b.snapshot(), nil
}

// Snapshots returns read-only views of every registered binding.
func (c *Container) Snapshots() map[string]BindingSnapshot {
	out := make(map[string]BindingSnapshot, len(c.bindings))
	for abstract, b := range c.bindings {
		out[abstract] = b.snapshot()
	}

	return out
}

// Flush discards every binding and class index entry. The container is empty
// afterwards, as if freshly created.
func (c *Container) Flush() {
	c.bindings = make(map[string]*binding)
	c.classes = make(map[string]reflect.Type)
}

// Use adds a hook observing container operations.
func (c *Container) Use(h Hook) {
	c.hooks.add(h)
}

// newBinding builds a binding record for concrete, classifying it as factory,
// class reference, or pre-built instance. Class references are introspected
// immediately; the same policy applies to bindings auto-created during
// resolution.
func (c *Container) newBinding(abstract string, concrete any, shared bool) (*binding, error) {
	if concrete == nil {
		t, ok := c.classes[abstract]
		if !ok {
			return nil, ErrNotInstantiable(abstract, "no class known under this key to self-bind")
		}

		concrete = t
	}

	switch v := concrete.(type) {
	case Factory:
		if v == nil {
			return nil, ErrNilConcrete
		}

		return &binding{abstract: abstract, kind: concreteFactory, shared: shared, factory: v}, nil

	case func(*Container) (any, error):
		if v == nil {
			return nil, ErrNilConcrete
		}

		return &binding{abstract: abstract, kind: concreteFactory, shared: shared, factory: v}, nil

	case reflect.Type:
		return c.newClassBinding(abstract, v, shared)

	case string:
		t, ok := c.classes[v]
		if !ok {
			return nil, ErrNotInstantiable(abstract, fmt.Sprintf("unknown class name '%s'", v))
		}

		return c.newClassBinding(abstract, t, shared)

	default:
		rv := reflect.ValueOf(concrete)
		if rv.Kind() == reflect.Func {
			return c.newConstructorBinding(abstract, rv, shared)
		}

		b := &binding{abstract: abstract, kind: concreteInstance, shared: true}
		b.state.freeze(concrete)

		return b, nil
	}
}

// newClassBinding introspects a struct class eagerly and indexes its type.
func (c *Container) newClassBinding(abstract string, t reflect.Type, shared bool) (*binding, error) {
	ci, deps, err := analyzeClass(abstract, t)
	if err != nil {
		return nil, err
	}

	c.classes[abstract] = ci.typ
	c.classes[classKey(ci.typ)] = ci.typ

	return &binding{
		abstract:     abstract,
		kind:         concreteClass,
		shared:       shared,
		class:        ci,
		dependencies: deps,
	}, nil
}

// newConstructorBinding introspects a constructor function eagerly and indexes
// its result type when it names a struct class.
func (c *Container) newConstructorBinding(abstract string, fn reflect.Value, shared bool) (*binding, error) {
	ci, deps, err := analyzeConstructor(abstract, fn)
	if err != nil {
		return nil, err
	}

	if ci.typ.Kind() == reflect.Struct {
		c.classes[classKey(ci.typ)] = ci.typ
	}

	return &binding{
		abstract:     abstract,
		kind:         concreteClass,
		shared:       shared,
		class:        ci,
		dependencies: deps,
	}, nil
}

// rebind installs b under abstract, carrying over the dependants set of any
// replaced record and invalidating those dependants' cached state.
func (c *Container) rebind(abstract string, b *binding) {
	if old, ok := c.bindings[abstract]; ok {
		b.dependants = old.dependants
		c.invalidateDependants(abstract)
	} else {
		b.dependants = make(map[string]struct{})
	}

	c.bindings[abstract] = b
}

// invalidateDependants marks the direct dependants of abstract stale: their
// descriptors, cached plans, and memoized instances are dropped and rebuilt on
// next resolution. Invalidation is deliberately one hop — plans reference
// dependencies by key, so a rebuilt record is observed by transitive consumers
// without a recursive walk at bind time.
func (c *Container) invalidateDependants(abstract string) {
	b, ok := c.bindings[abstract]
	if !ok {
		return
	}

	for key := range b.dependants {
		dependant, ok := c.bindings[key]
		if !ok {
			continue
		}

		dependant.dependencies = nil
		dependant.plan = nil
		dependant.state.reset()
		c.hooks.afterInvalidate(key)

		if c.log != nil {
			c.log.Debug(fmt.Sprintf("invalidated dependant '%s' of '%s'", key, abstract))
		}
	}
}

package cauldron

import (
	"fmt"
)

// resolveContext tracks one top-level resolution pass: the in-progress
// visitation stack for cycle detection, plus everything the pass committed to
// the registry (auto-bound keys, class index entries, compiled plans) so a
// failed pass can be rolled back completely.
type resolveContext struct {
	stack     []string
	autoBound []string
	indexed   []string
	compiled  []*binding
}

// push adds abstract to the visitation stack, failing if it is already there.
// The explicit guard is what turns a cyclic constructor graph into an error
// instead of unbounded recursion.
func (rc *resolveContext) push(abstract string) error {
	for _, key := range rc.stack {
		if key == abstract {
			cycle := make([]string, 0, len(rc.stack)+1)
			cycle = append(cycle, rc.stack...)
			cycle = append(cycle, abstract)

			return ErrCyclicDependency(cycle)
		}
	}

	rc.stack = append(rc.stack, abstract)

	return nil
}

func (rc *resolveContext) pop() {
	rc.stack = rc.stack[:len(rc.stack)-1]
}

// resolve is the internal resolver. Plans reference their dependencies through
// this method, so the visitation stack spans the whole construction tree.
func (c *Container) resolve(abstract string, rc *resolveContext) (any, error) {
	b, ok := c.bindings[abstract]
	if !ok {
		return nil, ErrBindingNotFound(abstract)
	}

	// Identity-stable fast path for materialized shared bindings.
	if b.shared && b.state.created {
		return b.state.instance, nil
	}

	if err := rc.push(abstract); err != nil {
		return nil, err
	}
	defer rc.pop()

	if b.plan == nil {
		if err := c.compile(b, rc); err != nil {
			return nil, err
		}
	}

	return b.state.materialize(b.shared, func() (any, error) {
		return b.plan.construct(c, rc)
	})
}

// compile populates missing dependency metadata, links class edges through the
// registry, and caches the construction plan on the binding record.
func (c *Container) compile(b *binding, rc *resolveContext) error {
	if b.kind == concreteClass {
		if b.dependencies == nil {
			if err := c.introspect(b); err != nil {
				return err
			}
		}

		if err := c.link(b, rc); err != nil {
			return err
		}
	}

	b.plan = compilePlan(b)
	rc.compiled = append(rc.compiled, b)

	if c.log != nil {
		c.log.Debug(fmt.Sprintf("compiled construction plan for '%s' (%d dependencies)",
			b.abstract, len(b.dependencies)))
	}

	return nil
}

// introspect (re)computes a class binding's dependency descriptors. The list
// is assigned only on success, keeping the fully-populated-or-absent invariant.
func (c *Container) introspect(b *binding) error {
	var (
		deps []DependencyDescriptor
		err  error
	)

	if b.class.ctor.IsValid() {
		_, deps, err = analyzeConstructor(b.abstract, b.class.ctor)
	} else {
		_, deps, err = analyzeClass(b.abstract, b.class.typ)
	}

	if err != nil {
		return err
	}

	b.dependencies = deps

	return nil
}

// link walks a binding's class edges, auto-creating default bindings for
// unregistered dependencies and recording the symmetric dependant edge used
// for cache invalidation.
func (c *Container) link(b *binding, rc *resolveContext) error {
	for _, dep := range b.dependencies {
		if dep.Kind != ClassDependency {
			continue
		}

		target, ok := c.bindings[dep.Class]
		if !ok {
			if dep.typ == nil {
				return ErrNotInstantiable(dep.Class, "no class known under this key")
			}

			if _, exists := c.classes[dep.Class]; !exists {
				rc.indexed = append(rc.indexed, dep.Class)
			}

			if key := classKey(dep.typ); key != dep.Class {
				if _, exists := c.classes[key]; !exists {
					rc.indexed = append(rc.indexed, key)
				}
			}

			auto, err := c.newBinding(dep.Class, dep.typ, false)
			if err != nil {
				return err
			}

			auto.dependants = make(map[string]struct{})
			c.bindings[dep.Class] = auto
			rc.autoBound = append(rc.autoBound, dep.Class)
			target = auto

			if c.log != nil {
				c.log.Debug(fmt.Sprintf("auto-bound dependency class '%s' for '%s'",
					dep.Class, b.abstract))
			}
		}

		target.dependants[b.abstract] = struct{}{}
	}

	return nil
}

// rollback undoes everything a failed resolution pass committed: auto-created
// bindings and class index entries are removed, and bindings compiled during
// the pass drop their cached plan and descriptors. The last part matters: a
// surviving plan could reference the deleted keys, which would pin the
// dependant to a stale graph and skip re-linking on its next resolution.
func (c *Container) rollback(rc *resolveContext) {
	if c.keepAutoBound {
		return
	}

	for _, abstract := range rc.autoBound {
		delete(c.bindings, abstract)
	}

	for _, key := range rc.indexed {
		delete(c.classes, key)
	}

	for _, b := range rc.compiled {
		b.dependencies = nil
		b.plan = nil
	}

	if c.log != nil && len(rc.autoBound) > 0 {
		c.log.Warn(fmt.Sprintf("rolled back %d auto-created bindings after failed resolution",
			len(rc.autoBound)))
	}
}

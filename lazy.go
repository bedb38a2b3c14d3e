package cauldron

import "fmt"

// Lazy wraps a binding that is resolved on first access. Useful for deferring
// expensive construction until the value is actually needed. Like the
// container itself, a Lazy assumes a single owner goroutine.
type Lazy[T any] struct {
	container *Container
	abstract  string
	resolved  bool
	value     T
	err       error
}

// NewLazy creates a lazy wrapper around abstract.
func NewLazy[T any](c *Container, abstract string) *Lazy[T] {
	return &Lazy[T]{container: c, abstract: abstract}
}

// Get resolves the binding on first call; subsequent calls return the cached
// outcome, including a cached error.
func (l *Lazy[T]) Get() (T, error) {
	if l.resolved {
		return l.value, l.err
	}

	l.resolved = true

	value, err := Resolve[T](l.container, l.abstract)
	if err != nil {
		l.err = err

		return l.value, err
	}

	l.value = value

	return l.value, nil
}

// MustGet resolves the binding, panicking on error.
func (l *Lazy[T]) MustGet() T {
	value, err := l.Get()
	if err != nil {
		panic(fmt.Sprintf("lazy binding %s failed: %v", l.abstract, err))
	}

	return value
}

// IsResolved reports whether resolution has happened.
func (l *Lazy[T]) IsResolved() bool {
	return l.resolved
}

// Abstract returns the wrapped key.
func (l *Lazy[T]) Abstract() string {
	return l.abstract
}

// Provider wraps a binding and resolves it anew on every access. For transient
// bindings each call yields a fresh object graph.
type Provider[T any] struct {
	container *Container
	abstract  string
}

// NewProvider creates a provider for abstract.
func NewProvider[T any](c *Container, abstract string) *Provider[T] {
	return &Provider[T]{container: c, abstract: abstract}
}

// Provide resolves and returns the binding's value.
func (p *Provider[T]) Provide() (T, error) {
	return Resolve[T](p.container, p.abstract)
}

// MustProvide resolves the value, panicking on error.
func (p *Provider[T]) MustProvide() T {
	value, err := p.Provide()
	if err != nil {
		panic(fmt.Sprintf("provider %s failed: %v", p.abstract, err))
	}

	return value
}

// Abstract returns the wrapped key.
func (p *Provider[T]) Abstract() string {
	return p.abstract
}

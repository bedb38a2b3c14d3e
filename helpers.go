package cauldron

import (
	"fmt"
	"reflect"

	logger "github.com/xraph/go-utils/log"
	"github.com/xraph/go-utils/metrics"
)

// Resolve with type safety.
func Resolve[T any](c *Container, abstract string) (T, error) {
	var zero T

	value, err := c.Resolve(abstract)
	if err != nil {
		return zero, err
	}

	typed, ok := value.(T)
	if !ok {
		return zero, ErrTypeMismatch(abstract, value)
	}

	return typed, nil
}

// Must resolves or panics - use only during startup.
func Must[T any](c *Container, abstract string) T {
	value, err := Resolve[T](c, abstract)
	if err != nil {
		panic(fmt.Sprintf("failed to resolve %s: %v", abstract, err))
	}

	return value
}

// Type returns the reflect.Type of T, usable as a class reference in Bind.
// Works for interfaces as well as concrete types.
//
// Example:
//
//	c.Bind("shape", cauldron.Type[Circle](), false)
func Type[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// RegisterClass indexes T's struct type so that string class references and
// self-binding can name it. Returns the class key.
//
// Example:
//
//	cauldron.RegisterClass[Circle](c)
//	c.Bind("shape", "cauldron.Circle", false)
func RegisterClass[T any](c *Container) string {
	t := Type[T]()
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	key := classKey(t)
	c.classes[key] = t

	return key
}

// BindClass binds abstract to the class T.
func BindClass[T any](c *Container, abstract string, shared bool) error {
	return c.Bind(abstract, Type[T](), shared)
}

// BindFactory is a convenience wrapper for typed factories.
func BindFactory[T any](c *Container, abstract string, shared bool, factory func(*Container) (T, error)) error {
	return c.Bind(abstract, Factory(func(c *Container) (any, error) {
		return factory(c)
	}), shared)
}

// InstanceOf registers a pre-built value and returns it typed.
func InstanceOf[T any](c *Container, abstract string, value T) T {
	c.Instance(abstract, value)

	return value
}

// GetLogger resolves the logger from the container.
// This is a convenience for containers that register a "logger" binding.
func GetLogger(c *Container) (logger.Logger, error) {
	l, err := c.Resolve("logger")
	if err != nil {
		return nil, err
	}

	log, ok := l.(logger.Logger)
	if !ok {
		return nil, fmt.Errorf("resolved instance is not Logger, got %T", l)
	}

	return log, nil
}

// GetMetrics resolves the metrics sink from the container.
// This is a convenience for containers that register a "metrics" binding.
func GetMetrics(c *Container) (metrics.Metrics, error) {
	m, err := c.Resolve("metrics")
	if err != nil {
		return nil, err
	}

	sink, ok := m.(metrics.Metrics)
	if !ok {
		return nil, fmt.Errorf("resolved instance is not Metrics, got %T", m)
	}

	return sink, nil
}

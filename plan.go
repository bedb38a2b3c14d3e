package cauldron

import (
	"fmt"
	"reflect"
)

// plan is a deferred construction recipe: a tree of thunks that yields an
// instance on each invocation. Plans are stateless, reusable templates —
// lifecycle memoization lives on the binding record, never on the plan — so a
// cached transient plan produces a fresh object graph every time.
type plan interface {
	construct(c *Container, rc *resolveContext) (any, error)
	fmt.Stringer
}

// factoryPlan defers to an opaque user factory.
type factoryPlan struct {
	fn Factory
}

func (p factoryPlan) construct(c *Container, _ *resolveContext) (any, error) {
	return p.fn(c)
}

func (p factoryPlan) String() string { return "factory()" }

// literalPlan yields a plain parameter's default value.
type literalPlan struct {
	value any
}

func (p literalPlan) construct(*Container, *resolveContext) (any, error) {
	return p.value, nil
}

func (p literalPlan) String() string { return fmt.Sprintf("literal(%v)", p.value) }

// bindingPlan resolves another binding by abstract key at construction time.
// Linking by key rather than embedding the dependency's plan is what makes
// one-hop invalidation sound: when the dependency is rebound and rebuilt, the
// dependant's cached plan picks up the replacement on its next invocation
// without being recompiled.
type bindingPlan struct {
	abstract string
}

func (p bindingPlan) construct(c *Container, rc *resolveContext) (any, error) {
	return c.resolve(p.abstract, rc)
}

func (p bindingPlan) String() string { return fmt.Sprintf("binding(%s)", p.abstract) }

// classPlan allocates a struct class and populates its constructor fields
// from the argument plans. Instantiation always yields a pointer to the struct.
type classPlan struct {
	typ    reflect.Type
	fields []int
	args   []plan
}

func (p classPlan) construct(c *Container, rc *resolveContext) (any, error) {
	value := reflect.New(p.typ)
	elem := value.Elem()

	for i, arg := range p.args {
		resolved, err := arg.construct(c, rc)
		if err != nil {
			return nil, err
		}

		if resolved == nil {
			continue
		}

		field := elem.Field(p.fields[i])
		if err := assign(field, resolved); err != nil {
			return nil, ErrTypeMismatch(p.typ.String(), resolved)
		}
	}

	return value.Interface(), nil
}

func (p classPlan) String() string {
	return fmt.Sprintf("class(%s, args=%v)", p.typ, p.args)
}

// ctorPlan invokes a constructor function with resolved arguments.
type ctorPlan struct {
	fn   reflect.Value
	args []plan
}

func (p ctorPlan) construct(c *Container, rc *resolveContext) (any, error) {
	fnType := p.fn.Type()
	in := make([]reflect.Value, len(p.args))

	for i, arg := range p.args {
		resolved, err := arg.construct(c, rc)
		if err != nil {
			return nil, err
		}

		if resolved == nil {
			in[i] = reflect.Zero(fnType.In(i))

			continue
		}

		value := reflect.ValueOf(resolved)
		if value.Kind() == reflect.Ptr && value.Type().Elem() == fnType.In(i) {
			value = value.Elem()
		}

		if !value.Type().AssignableTo(fnType.In(i)) {
			return nil, ErrTypeMismatch(fnType.String(), resolved)
		}

		in[i] = value
	}

	out := p.fn.Call(in)
	if len(out) == 2 && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}

	return out[0].Interface(), nil
}

func (p ctorPlan) String() string {
	return fmt.Sprintf("constructor(%s, args=%v)", p.fn.Type(), p.args)
}

// containerPlan yields the resolving container itself, satisfying *Container
// constructor parameters without a registry lookup.
type containerPlan struct{}

func (containerPlan) construct(c *Container, _ *resolveContext) (any, error) {
	return c, nil
}

func (containerPlan) String() string { return "container()" }

// valuePlan yields a pre-built object as-is.
type valuePlan struct {
	obj any
}

func (p valuePlan) construct(*Container, *resolveContext) (any, error) {
	return p.obj, nil
}

func (p valuePlan) String() string { return fmt.Sprintf("value(%T)", p.obj) }

// compilePlan converts a binding whose dependency descriptors are fully known
// into its construction plan.
func compilePlan(b *binding) plan {
	switch b.kind {
	case concreteFactory:
		return factoryPlan{fn: b.factory}

	case concreteInstance:
		return valuePlan{obj: b.state.instance}

	default:
		args := make([]plan, len(b.dependencies))
		fields := make([]int, len(b.dependencies))

		for i, dep := range b.dependencies {
			fields[i] = dep.field

			switch dep.Kind {
			case ClassDependency:
				args[i] = bindingPlan{abstract: dep.Class}
			case ContainerDependency:
				args[i] = containerPlan{}
			default:
				args[i] = literalPlan{value: dep.Value}
			}
		}

		if b.class.ctor.IsValid() {
			return ctorPlan{fn: b.class.ctor, args: args}
		}

		return classPlan{typ: b.class.typ, fields: fields, args: args}
	}
}

// assign sets field to value, converting numeric defaults to the exact field
// type when needed.
func assign(field reflect.Value, value any) error {
	v := reflect.ValueOf(value)

	// Instantiation yields *T; value-struct parameters take the dereference.
	if v.Kind() == reflect.Ptr && v.Type().Elem() == field.Type() {
		v = v.Elem()
	}

	if v.Type().AssignableTo(field.Type()) {
		field.Set(v)

		return nil
	}

	if v.Type().ConvertibleTo(field.Type()) {
		field.Set(v.Convert(field.Type()))

		return nil
	}

	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

package cauldron

import (
	"fmt"
	"reflect"
	"strconv"
)

var (
	errorType     = reflect.TypeOf((*error)(nil)).Elem()
	containerType = reflect.TypeOf((*Container)(nil))
)

// classInfo describes an instantiable class: a struct type whose exported
// fields form the constructor parameter list, or a constructor function whose
// parameters are the dependencies.
type classInfo struct {
	typ  reflect.Type  // struct type, pointer dereferenced
	ctor reflect.Value // valid when bound via constructor function
}

func (ci *classInfo) String() string {
	if ci.ctor.IsValid() {
		return fmt.Sprintf("constructor %s", ci.ctor.Type())
	}

	return ci.typ.String()
}

// classKey derives the abstract key a type is indexed under. Pointer and value
// forms of the same struct share a key.
func classKey(t reflect.Type) string {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	return t.String()
}

// isClassType reports whether a parameter type is a class edge rather than a
// plain value. Interfaces, structs, and pointers to structs are class edges.
func isClassType(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface:
		return true
	case reflect.Struct:
		return true
	case reflect.Ptr:
		return t.Elem().Kind() == reflect.Struct
	default:
		return false
	}
}

// analyzeClass validates that t is an instantiable struct class and extracts
// its constructor parameter list in field declaration order.
//
// Field rules:
//   - unexported fields and fields tagged `inject:"-"` are skipped
//   - an `inject:"name"` tag forces a class edge under the given key
//   - a *Container field receives the resolving container itself
//   - interface, struct, and pointer-to-struct fields are class edges keyed
//     by their type
//   - any other exported field is a plain parameter and requires a
//     `default:"..."` tag; a missing or unparsable default is an error
func analyzeClass(abstract string, t reflect.Type) (*classInfo, []DependencyDescriptor, error) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return nil, nil, ErrNotInstantiable(abstract, fmt.Sprintf("%s is not a struct class", t))
	}

	deps := make([]DependencyDescriptor, 0, t.NumField())

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get("inject")
		if tag == "-" {
			continue
		}

		if tag != "" {
			deps = append(deps, DependencyDescriptor{
				Kind:  ClassDependency,
				Class: tag,
				field: i,
				typ:   field.Type,
			})

			continue
		}

		if field.Type == containerType {
			deps = append(deps, DependencyDescriptor{
				Kind:  ContainerDependency,
				field: i,
				typ:   field.Type,
			})

			continue
		}

		if isClassType(field.Type) {
			deps = append(deps, DependencyDescriptor{
				Kind:  ClassDependency,
				Class: classKey(field.Type),
				field: i,
				typ:   field.Type,
			})

			continue
		}

		value, err := defaultValue(abstract, field)
		if err != nil {
			return nil, nil, err
		}

		deps = append(deps, DependencyDescriptor{
			Kind:  LiteralDependency,
			Value: value,
			field: i,
			typ:   field.Type,
		})
	}

	return &classInfo{typ: t}, deps, nil
}

// analyzeConstructor validates a constructor function and extracts its
// parameter list as dependency descriptors. Go functions cannot declare
// parameter defaults, so every parameter must be a class edge or a *Container,
// which receives the resolving container. Variadic constructors are rejected
// outright.
func analyzeConstructor(abstract string, fn reflect.Value) (*classInfo, []DependencyDescriptor, error) {
	fnType := fn.Type()

	if fnType.IsVariadic() {
		return nil, nil, ErrVariadicConstructor(abstract)
	}

	switch fnType.NumOut() {
	case 1:
		if fnType.Out(0).Implements(errorType) {
			return nil, nil, ErrNotInstantiable(abstract, "constructor must return a value, not only an error")
		}
	case 2:
		if !fnType.Out(1).Implements(errorType) {
			return nil, nil, ErrNotInstantiable(abstract, "constructor's second return value must be an error")
		}
	default:
		return nil, nil, ErrNotInstantiable(abstract, "constructor must return (T) or (T, error)")
	}

	deps := make([]DependencyDescriptor, 0, fnType.NumIn())

	for i := 0; i < fnType.NumIn(); i++ {
		paramType := fnType.In(i)

		if paramType == containerType {
			deps = append(deps, DependencyDescriptor{
				Kind:  ContainerDependency,
				field: -1,
				typ:   paramType,
			})

			continue
		}

		if !isClassType(paramType) {
			parameter := fmt.Sprintf("parameter %d (%s)", i, paramType)

			return nil, nil, ErrUnresolvableParameter(abstract, parameter,
				"plain parameters of constructor functions have no default value")
		}

		deps = append(deps, DependencyDescriptor{
			Kind:  ClassDependency,
			Class: classKey(paramType),
			field: -1,
			typ:   paramType,
		})
	}

	result := fnType.Out(0)
	if result.Kind() == reflect.Ptr {
		result = result.Elem()
	}

	return &classInfo{typ: result, ctor: fn}, deps, nil
}

// defaultValue parses a plain field's `default:"..."` tag into a value of the
// field's kind. The parsed value is converted to the exact field type when the
// plan executes.
func defaultValue(abstract string, field reflect.StructField) (any, error) {
	raw, ok := field.Tag.Lookup("default")
	if !ok {
		return nil, ErrUnresolvableParameter(abstract, field.Name,
			"plain parameter has no default value")
	}

	switch field.Type.Kind() {
	case reflect.String:
		return raw, nil

	case reflect.Bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, ErrUnresolvableParameter(abstract, field.Name,
				fmt.Sprintf("invalid bool default %q", raw))
		}

		return v, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, ErrUnresolvableParameter(abstract, field.Name,
				fmt.Sprintf("invalid integer default %q", raw))
		}

		return v, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, ErrUnresolvableParameter(abstract, field.Name,
				fmt.Sprintf("invalid unsigned integer default %q", raw))
		}

		return v, nil

	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, ErrUnresolvableParameter(abstract, field.Name,
				fmt.Sprintf("invalid float default %q", raw))
		}

		return v, nil

	default:
		return nil, ErrUnresolvableParameter(abstract, field.Name,
			fmt.Sprintf("defaults are not supported for %s parameters", field.Type.Kind()))
	}
}

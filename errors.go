package cauldron

import (
	"fmt"
	"strings"

	"github.com/xraph/go-utils/errs"
)

// =============================================================================
// ERROR CODES
// =============================================================================

const (
	// CodeBindingNotFound indicates resolution was requested for an abstract
	// key with no binding.
	CodeBindingNotFound = "BINDING_NOT_FOUND"

	// CodeInvalidBinding indicates a concrete reference cannot be introspected
	// or instantiated.
	CodeInvalidBinding = "INVALID_BINDING"

	// CodeUnresolvableParameter indicates a constructor parameter has neither
	// a class type nor a declared default value.
	CodeUnresolvableParameter = "UNRESOLVABLE_PARAMETER"

	// CodeVariadicConstructor indicates a variadic constructor function, which
	// is unsupported.
	CodeVariadicConstructor = "VARIADIC_CONSTRUCTOR"

	// CodeCyclicDependency indicates a cycle in the constructor dependency graph.
	CodeCyclicDependency = "CYCLIC_DEPENDENCY"

	// CodeTypeMismatch indicates a resolved value did not match the requested type.
	CodeTypeMismatch = "TYPE_MISMATCH"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

// ErrNilConcrete is returned when a nil factory is bound explicitly.
var ErrNilConcrete = errs.NewError(CodeInvalidBinding, "concrete cannot be a nil factory", nil)

// ErrBindingNotFoundSentinel is a sentinel for not-found checks.
var ErrBindingNotFoundSentinel = errs.NewError(CodeBindingNotFound, "binding not found", nil)

// ErrCyclicDependencySentinel is a sentinel for cycle checks.
var ErrCyclicDependencySentinel = errs.NewError(CodeCyclicDependency, "cyclic dependency", nil)

// =============================================================================
// ERROR CONSTRUCTORS
// =============================================================================

// ErrBindingNotFound creates an error for an unregistered abstract key.
func ErrBindingNotFound(abstract string) *errs.Error {
	return errs.NewError(
		CodeBindingNotFound,
		fmt.Sprintf("no binding registered for '%s'", abstract),
		nil,
	).WithContext("abstract", abstract).(*errs.Error)
}

// ErrNotInstantiable creates an error for a concrete reference that cannot be
// introspected or instantiated.
func ErrNotInstantiable(abstract, reason string) *errs.Error {
	return errs.NewError(
		CodeInvalidBinding,
		fmt.Sprintf("binding '%s' is not instantiable: %s", abstract, reason),
		nil,
	).WithContext("abstract", abstract).(*errs.Error)
}

// ErrUnresolvableParameter creates an error for a plain constructor parameter
// without a usable default value. The engine never guesses a zero value.
func ErrUnresolvableParameter(abstract, parameter, reason string) *errs.Error {
	return errs.NewError(
		CodeUnresolvableParameter,
		fmt.Sprintf("cannot resolve parameter '%s' of '%s': %s", parameter, abstract, reason),
		nil,
	).WithContext("abstract", abstract).
		WithContext("parameter", parameter).(*errs.Error)
}

// ErrVariadicConstructor creates an error for a variadic constructor function.
func ErrVariadicConstructor(abstract string) *errs.Error {
	return errs.NewError(
		CodeVariadicConstructor,
		fmt.Sprintf("constructor for '%s' is variadic; bind a factory instead", abstract),
		nil,
	).WithContext("abstract", abstract).(*errs.Error)
}

// ErrCyclicDependency creates an error for a detected dependency cycle.
func ErrCyclicDependency(cycle []string) *errs.Error {
	return errs.NewError(
		CodeCyclicDependency,
		fmt.Sprintf("cyclic dependency detected: %s", strings.Join(cycle, " -> ")),
		nil,
	).WithContext("cycle", cycle).(*errs.Error)
}

// ErrTypeMismatch creates an error for a resolved value of an unexpected type.
func ErrTypeMismatch(abstract string, actual any) *errs.Error {
	return errs.NewError(
		CodeTypeMismatch,
		fmt.Sprintf("binding '%s' type mismatch: got %T", abstract, actual),
		nil,
	).WithContext("abstract", abstract).
		WithContext("actual_type", fmt.Sprintf("%T", actual)).(*errs.Error)
}

package cauldron

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loopA struct {
	B *loopB
}

type loopB struct {
	A *loopA
}

type selfLoop struct {
	Self *selfLoop
}

type midDep struct {
	Bad *NoDefault
}

type outerDep struct {
	Mid *midDep
}

type Greeter struct {
	Target *Point
	Prefix string
}

func newGreeter(target *Point) *Greeter {
	return &Greeter{Target: target, Prefix: "hello"}
}

func newGreeterChecked(target *Point) (*Greeter, error) {
	if target == nil {
		return nil, fmt.Errorf("nil target")
	}

	return &Greeter{Target: target}, nil
}

func TestResolve_AutoBindsDependencyClasses(t *testing.T) {
	c := New()
	require.NoError(t, c.Bind("shape", Type[Circle](), false))

	assert.False(t, c.Has("cauldron.Point"))

	value, err := c.Resolve("shape")
	require.NoError(t, err)
	require.NotNil(t, value.(*Circle).Center)

	// The dependency class received a default binding under its class key.
	assert.True(t, c.Has("cauldron.Point"))

	snapshot, err := c.Snapshot("cauldron.Point")
	require.NoError(t, err)
	assert.Equal(t, "transient", snapshot.Lifecycle)
}

func TestResolve_RecordsDependantEdges(t *testing.T) {
	c := New()
	require.NoError(t, c.Bind("shape", Type[Circle](), false))

	_, err := c.Resolve("shape")
	require.NoError(t, err)

	snapshot, err := c.Snapshot("cauldron.Point")
	require.NoError(t, err)
	assert.Equal(t, []string{"shape"}, snapshot.Dependants)
}

func TestResolve_ExplicitBindingWinsOverAutoCreation(t *testing.T) {
	c := New()
	center := &Point{X: 3, Y: 4}
	c.Instance("cauldron.Point", center)
	require.NoError(t, c.Bind("shape", Type[Circle](), false))

	value, err := c.Resolve("shape")
	require.NoError(t, err)

	assert.Same(t, center, value.(*Circle).Center)
}

func TestResolve_AppliesDefaultTags(t *testing.T) {
	c := New()
	require.NoError(t, c.Bind("shape", Type[Circle](), false))

	value, err := c.Resolve("shape")
	require.NoError(t, err)

	assert.Equal(t, 5, value.(*Circle).Radius)
}

func TestResolve_UnboundInterfaceDependency(t *testing.T) {
	c := New()
	require.NoError(t, c.Bind("newsletter", Type[Newsletter](), false))

	// The "mailer" edge is an interface; there is nothing to auto-create.
	_, err := c.Resolve("newsletter")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not instantiable")
}

func TestResolve_ConstructorFunction(t *testing.T) {
	c := New()
	require.NoError(t, c.Bind("greeter", newGreeter, false))

	value, err := c.Resolve("greeter")
	require.NoError(t, err)

	greeter := value.(*Greeter)
	assert.Equal(t, "hello", greeter.Prefix)
	assert.NotNil(t, greeter.Target)
}

func TestResolve_ConstructorWithErrorResult(t *testing.T) {
	c := New()
	require.NoError(t, c.Bind("greeter", newGreeterChecked, false))

	value, err := c.Resolve("greeter")
	require.NoError(t, err)
	assert.NotNil(t, value.(*Greeter).Target)
}

func TestResolve_ConstructorErrorPropagates(t *testing.T) {
	c := New()
	boom := fmt.Errorf("boom")
	require.NoError(t, c.Bind("greeter", func(p *Point) (*Greeter, error) {
		return nil, boom
	}, false))

	_, err := c.Resolve("greeter")

	assert.ErrorIs(t, err, boom)
}

func TestBind_VariadicConstructorFailsFast(t *testing.T) {
	c := New()

	err := c.Bind("things", func(points ...*Point) *Greeter {
		return &Greeter{}
	}, false)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "variadic")
}

func TestBind_ConstructorPlainParameterFailsFast(t *testing.T) {
	c := New()

	// Go functions have no parameter defaults, so a plain int is unresolvable.
	err := c.Bind("greeter", func(count int) *Greeter {
		return &Greeter{}
	}, false)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot resolve parameter")
}

func TestBind_PlainFieldWithoutDefaultFailsFast(t *testing.T) {
	c := New()

	err := c.Bind("bad", Type[NoDefault](), false)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no default value")
}

func TestResolve_CycleDetected(t *testing.T) {
	c := New()
	require.NoError(t, c.Bind("a", Type[loopA](), false))

	_, err := c.Resolve("a")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cyclic dependency detected")
	assert.Contains(t, err.Error(), "cauldron.loopB")
}

func TestResolve_SelfCycleDetected(t *testing.T) {
	c := New()
	require.NoError(t, c.Bind("cauldron.selfLoop", Type[selfLoop](), false))

	_, err := c.Resolve("cauldron.selfLoop")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cyclic dependency detected")
}

func TestResolve_CycleLeavesNoAutoBindings(t *testing.T) {
	c := New()
	require.NoError(t, c.Bind("a", Type[loopA](), false))

	_, err := c.Resolve("a")
	require.Error(t, err)

	assert.False(t, c.Has("cauldron.loopA"))
	assert.False(t, c.Has("cauldron.loopB"))
	assert.True(t, c.Has("a"))
}

func TestResolve_RollsBackAutoBindingsOnFailure(t *testing.T) {
	c := New()
	require.NoError(t, c.Bind("outer", Type[outerDep](), false))

	// midDep auto-binds fine, then its own NoDefault edge fails; the pass
	// must leave no trace of the intermediate binding.
	_, err := c.Resolve("outer")
	require.Error(t, err)

	assert.False(t, c.Has("cauldron.midDep"))
	assert.True(t, c.Has("outer"))
}

func TestResolve_FailureIsRepeatable(t *testing.T) {
	c := New()
	require.NoError(t, c.Bind("outer", Type[outerDep](), false))

	// Rollback must restore the registry completely; otherwise the second
	// attempt would trip over a cached plan referencing removed keys and
	// report a different error than the first.
	_, err := c.Resolve("outer")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot resolve parameter 'Timeout'")

	_, err = c.Resolve("outer")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot resolve parameter 'Timeout'")
	assert.NotContains(t, err.Error(), "no binding registered")
}

func TestResolve_RecoversAfterBindingMissingLeaf(t *testing.T) {
	c := New()
	require.NoError(t, c.Bind("outer", Type[outerDep](), false))

	_, err := c.Resolve("outer")
	require.Error(t, err)

	// Explicitly binding the failing leaf makes the dependant resolvable.
	c.Instance("cauldron.NoDefault", &NoDefault{Timeout: 30})

	value, err := c.Resolve("outer")
	require.NoError(t, err)
	assert.Equal(t, 30, value.(*outerDep).Mid.Bad.Timeout)
}

func TestResolve_RollbackClearsClassIndex(t *testing.T) {
	c := New()
	require.NoError(t, c.Bind("outer", Type[outerDep](), false))

	_, err := c.Resolve("outer")
	require.Error(t, err)

	_, indexed := c.classes["cauldron.midDep"]
	assert.False(t, indexed)
}

func TestResolve_ConstructorReceivesResolvingContainer(t *testing.T) {
	c := New()
	c.Instance("env", &Config{Env: "prod"})

	// A typed constructor taking *Container gets the resolving container,
	// not an auto-created one.
	require.NoError(t, c.Bind("greeter", func(cc *Container) (*Greeter, error) {
		cfg, err := Resolve[*Config](cc, "env")
		if err != nil {
			return nil, err
		}

		return &Greeter{Prefix: cfg.Env}, nil
	}, false))

	value, err := c.Resolve("greeter")
	require.NoError(t, err)
	assert.Equal(t, "prod", value.(*Greeter).Prefix)
	assert.False(t, c.Has("cauldron.Container"))
}

func TestResolve_ContainerFieldInjected(t *testing.T) {
	type wired struct {
		Registry *Container
	}

	c := New()
	require.NoError(t, c.Bind("wired", Type[wired](), false))

	value, err := c.Resolve("wired")
	require.NoError(t, err)

	assert.Same(t, c, value.(*wired).Registry)
}

func TestResolve_KeepAutoBindings(t *testing.T) {
	c := New(KeepAutoBindings())
	require.NoError(t, c.Bind("outer", Type[outerDep](), false))

	_, err := c.Resolve("outer")
	require.Error(t, err)

	assert.True(t, c.Has("cauldron.midDep"))
}

func TestResolve_SuccessKeepsAutoBindings(t *testing.T) {
	c := New()
	require.NoError(t, c.Bind("shape", Type[Circle](), false))

	_, err := c.Resolve("shape")
	require.NoError(t, err)

	assert.True(t, c.Has("cauldron.Point"))
}

func TestResolve_SharedDependencyIsSharedAcrossGraphs(t *testing.T) {
	c := New()
	require.NoError(t, c.Bind("cauldron.Point", Type[Point](), true))
	require.NoError(t, c.Bind("shape", Type[Circle](), false))

	first, err := c.Resolve("shape")
	require.NoError(t, err)

	second, err := c.Resolve("shape")
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Same(t, first.(*Circle).Center, second.(*Circle).Center)
}

func TestResolve_RebindDependencyRebuildsTransitiveConsumer(t *testing.T) {
	c := New()
	require.NoError(t, c.Bind("shape", Type[Circle](), true))

	first, err := c.Resolve("shape")
	require.NoError(t, err)

	// Replacing the auto-created center invalidates the circle's cached
	// instance even though the circle's own binding was untouched.
	c.Instance("cauldron.Point", &Point{X: 9})

	second, err := c.Resolve("shape")
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, 9, second.(*Circle).Center.X)
}

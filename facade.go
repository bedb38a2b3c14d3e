package cauldron

// Subscript-style sugar over the core operations, mirroring array access on
// the container: Get/Set/Exists/Delete are pass-through wrappers with no
// independent logic.

// Get is subscript read sugar for Resolve.
func (c *Container) Get(abstract string) (any, error) {
	return c.Resolve(abstract)
}

// Set is subscript write sugar: it registers value as a pre-built instance.
func (c *Container) Set(abstract string, value any) {
	c.Instance(abstract, value)
}

// Exists is subscript sugar for Has.
func (c *Container) Exists(abstract string) bool {
	return c.Has(abstract)
}

// Delete is subscript sugar for Unbind.
func (c *Container) Delete(abstract string) {
	c.Unbind(abstract)
}

// defaultContainer is the process-wide convenience container. The explicit
// Container passed to call sites is the primary API; this accessor exists only
// for call sites that cannot thread one through.
var defaultContainer = New()

// Default returns the process-wide convenience container.
func Default() *Container {
	return defaultContainer
}

// SetDefault replaces the process-wide convenience container and returns the
// previous one.
func SetDefault(c *Container) *Container {
	prev := defaultContainer
	defaultContainer = c

	return prev
}

// Bind registers a binding on the default container.
func Bind(abstract string, concrete any, shared bool) error {
	return defaultContainer.Bind(abstract, concrete, shared)
}

// ResolveDefault resolves from the default container.
func ResolveDefault(abstract string) (any, error) {
	return defaultContainer.Resolve(abstract)
}

// Make binds and resolves on the default container.
func Make(abstract string, concrete any, shared bool) (any, error) {
	return defaultContainer.Make(abstract, concrete, shared)
}

// Has reports whether the default container has a binding for abstract.
func Has(abstract string) bool {
	return defaultContainer.Has(abstract)
}

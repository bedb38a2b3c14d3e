package cauldron

// Key provides type-safe binding identification. Use NewKey to create typed
// keys for your bindings.
type Key[T any] struct {
	abstract string
}

// NewKey creates a new typed binding key. The type parameter T ensures type
// safety when binding and resolving.
//
// Example:
//
//	var ConfigKey = cauldron.NewKey[*Config]("config")
//	var MailerKey = cauldron.NewKey[Mailer]("mailer")
func NewKey[T any](abstract string) Key[T] {
	return Key[T]{abstract: abstract}
}

// Abstract returns the string key.
func (k Key[T]) Abstract() string {
	return k.abstract
}

// BindKey binds a typed factory under a typed key.
//
// Example:
//
//	cauldron.BindKey(c, ConfigKey, true, func(c *cauldron.Container) (*Config, error) {
//	    return LoadConfig()
//	})
func BindKey[T any](c *Container, key Key[T], shared bool, factory func(*Container) (T, error)) error {
	return BindFactory(c, key.abstract, shared, factory)
}

// ResolveKey resolves a binding using a typed key.
func ResolveKey[T any](c *Container, key Key[T]) (T, error) {
	return Resolve[T](c, key.abstract)
}

// MustKey resolves a binding using a typed key and panics on error.
func MustKey[T any](c *Container, key Key[T]) T {
	value, err := ResolveKey(c, key)
	if err != nil {
		panic(err)
	}

	return value
}

// HasKey checks registration using a typed key.
func HasKey[T any](c *Container, key Key[T]) bool {
	return c.Has(key.abstract)
}

package cauldron

// lifecycle is the per-binding state machine. Shared bindings transition
// Uncreated -> Created exactly once, on first successful resolution, and
// Created is terminal. Transient bindings stay Uncreated and produce a fresh
// value on every call.
type lifecycle struct {
	created  bool
	instance any
}

// materialize executes build under the binding's lifecycle. For shared
// bindings the first successful result is frozen and returned on every
// subsequent call without re-invoking build.
func (l *lifecycle) materialize(shared bool, build func() (any, error)) (any, error) {
	if shared && l.created {
		return l.instance, nil
	}

	value, err := build()
	if err != nil {
		return nil, err
	}

	if shared {
		l.instance = value
		l.created = true
	}

	return value, nil
}

// reset returns the state machine to Uncreated. Used when an upstream binding
// is replaced and the memoized value would be stale.
func (l *lifecycle) reset() {
	l.created = false
	l.instance = nil
}

// freeze marks the state Created with a pre-built value, bypassing any plan.
// Used for instance bindings.
func (l *lifecycle) freeze(value any) {
	l.instance = value
	l.created = true
}

func lifecycleName(shared bool) string {
	if shared {
		return "shared"
	}

	return "transient"
}

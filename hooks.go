package cauldron

// Hook observes container operations. Hooks can be used for logging, metrics,
// and testing. All callbacks run synchronously on the owner goroutine.
type Hook interface {
	// BeforeResolve is called before a top-level resolution.
	// Return an error to abort it.
	BeforeResolve(abstract string) error

	// AfterResolve is called after a top-level resolution, even on failure
	// (value and err may both be set).
	AfterResolve(abstract string, value any, err error) error

	// AfterBind is called after a binding is registered or replaced.
	AfterBind(abstract string)

	// AfterInvalidate is called when a dependant's cached state is dropped
	// because an upstream binding was replaced or removed.
	AfterInvalidate(abstract string)
}

// hookChain fans out to registered hooks in order.
type hookChain struct {
	hooks []Hook
}

func newHookChain() *hookChain {
	return &hookChain{hooks: make([]Hook, 0)}
}

func (h *hookChain) add(hook Hook) {
	h.hooks = append(h.hooks, hook)
}

func (h *hookChain) beforeResolve(abstract string) error {
	for _, hook := range h.hooks {
		if err := hook.BeforeResolve(abstract); err != nil {
			return err
		}
	}

	return nil
}

func (h *hookChain) afterResolve(abstract string, value any, err error) error {
	for _, hook := range h.hooks {
		if hookErr := hook.AfterResolve(abstract, value, err); hookErr != nil {
			return hookErr
		}
	}

	return nil
}

func (h *hookChain) afterBind(abstract string) {
	for _, hook := range h.hooks {
		hook.AfterBind(abstract)
	}
}

func (h *hookChain) afterInvalidate(abstract string) {
	for _, hook := range h.hooks {
		hook.AfterInvalidate(abstract)
	}
}

// FuncHook wraps functions as a Hook. Nil functions are no-ops.
type FuncHook struct {
	BeforeResolveFunc   func(abstract string) error
	AfterResolveFunc    func(abstract string, value any, err error) error
	AfterBindFunc       func(abstract string)
	AfterInvalidateFunc func(abstract string)
}

// BeforeResolve implements Hook.
func (f *FuncHook) BeforeResolve(abstract string) error {
	if f.BeforeResolveFunc != nil {
		return f.BeforeResolveFunc(abstract)
	}

	return nil
}

// AfterResolve implements Hook.
func (f *FuncHook) AfterResolve(abstract string, value any, err error) error {
	if f.AfterResolveFunc != nil {
		return f.AfterResolveFunc(abstract, value, err)
	}

	return nil
}

// AfterBind implements Hook.
func (f *FuncHook) AfterBind(abstract string) {
	if f.AfterBindFunc != nil {
		f.AfterBindFunc(abstract)
	}
}

// AfterInvalidate implements Hook.
func (f *FuncHook) AfterInvalidate(abstract string) {
	if f.AfterInvalidateFunc != nil {
		f.AfterInvalidateFunc(abstract)
	}
}

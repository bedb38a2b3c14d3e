package cauldron

import (
	logger "github.com/xraph/go-utils/log"
)

// Option configures a Container at construction time.
type Option func(*Container)

// WithLogger attaches a logger. The container emits Debug entries for bind,
// plan compilation, auto-binding, and invalidation, and Warn entries when a
// failed resolution rolls back auto-created bindings.
func WithLogger(l logger.Logger) Option {
	return func(c *Container) {
		c.log = l
	}
}

// KeepAutoBindings disables rollback of the default bindings auto-created for
// dependency classes during a failed resolution. The default policy removes
// them so a failed Resolve leaves the registry unchanged.
func KeepAutoBindings() Option {
	return func(c *Container) {
		c.keepAutoBound = true
	}
}

// WithHooks registers hooks at construction time, equivalent to calling Use
// for each.
func WithHooks(hooks ...Hook) Option {
	return func(c *Container) {
		for _, h := range hooks {
			c.hooks.add(h)
		}
	}
}

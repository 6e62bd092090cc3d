package compiler

// Plugin is a configurator run once, in registration order, before
// compilation starts. A plugin may swap passes in and out of cfg,
// replace the reserved-word list, or otherwise adjust opts in place —
// the core spec implies no dynamic code loading; a Plugin is just a
// value the caller already linked in.
type Plugin interface {
	Use(cfg *Config, opts *Options)
}

// PluginFunc adapts a function to Plugin.
type PluginFunc func(cfg *Config, opts *Options)

func (f PluginFunc) Use(cfg *Config, opts *Options) { f(cfg, opts) }

package callext

// SessionConf is a map-backed VariableResolver for ${key} substitution.
// Variables are registered before the first Parse; the parser only ever
// reads through Resolve, so a fully configured SessionConf is safe to
// share across concurrent Parse calls.
type SessionConf struct {
	vars map[string]string
}

// ConfOption configures a SessionConf during construction.
type ConfOption func(*SessionConf)

// WithVariables seeds the configuration with the given variables.
func WithVariables(vars map[string]string) ConfOption {
	return func(c *SessionConf) {
		for k, v := range vars {
			c.vars[k] = v
		}
	}
}

// NewSessionConf creates an empty session configuration.
func NewSessionConf(opts ...ConfOption) *SessionConf {
	c := &SessionConf{vars: make(map[string]string)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Set registers one variable. Not for use concurrently with Parse.
func (c *SessionConf) Set(key, value string) {
	c.vars[key] = value
}

// Resolve implements VariableResolver.
func (c *SessionConf) Resolve(key string) (string, bool) {
	v, ok := c.vars[key]
	return v, ok
}

package completion

// ScriptOption configures NewIndex and Script
type ScriptOption func(cfg *scriptConfig)

type scriptConfig struct {
	defaultOptions []string
	depth          int
	filter         *Filter
}

// WithDefaultOptions adds flags accepted by every command
func WithDefaultOptions(options ...string) ScriptOption {
	return func(cfg *scriptConfig) {
		cfg.defaultOptions = append(cfg.defaultOptions, options...)
	}
}

// WithDepth sets how many member levels are traversed below the root
func WithDepth(depth int) ScriptOption {
	return func(cfg *scriptConfig) {
		cfg.depth = depth
	}
}

// WithFilter replaces the default visibility filter
func WithFilter(filter *Filter) ScriptOption {
	return func(cfg *scriptConfig) {
		if filter != nil {
			cfg.filter = filter
		}
	}
}

// NewIndex enumerates the commands of component and compiles them into an Index rooted at name
func NewIndex(name string, component any, opts ...ScriptOption) (*Index, error) {
	cfg := &scriptConfig{
		depth:  DefaultDepth,
		filter: defaultFilter,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	paths, err := cfg.filter.CollectCommands(component, cfg.depth)
	if err != nil {
		return nil, err
	}

	return BuildIndex(name, paths, cfg.defaultOptions), nil
}

// Script returns a completion script for the command name backed by component.
// shell is ShellBash or ShellFish; anything else produces a bash script.
func Script(name string, component any, shell string, opts ...ScriptOption) (string, error) {
	index, err := NewIndex(name, component, opts...)
	if err != nil {
		return "", err
	}

	return GetGenerator(shell).Generate(name, index), nil
}

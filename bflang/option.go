package bflang

type Option func(*compiler)

// WithoutMerge emits one operation per move or adjust instruction.
func WithoutMerge() Option {
	return func(c *compiler) {
		c.noMerge = true
	}
}

// WithoutIdioms compiles every loop as a pair of jumps.
func WithoutIdioms() Option {
	return func(c *compiler) {
		c.noIdioms = true
	}
}

// Unoptimized yields the one-operation-per-symbol program.
func Unoptimized() []Option {
	return []Option{
		WithoutMerge(),
		WithoutIdioms(),
	}
}

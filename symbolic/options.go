package symbolic

// Option configures parsing behavior.
type Option func(*options)

type options struct {
	strict bool
}

func applyOptions(opts ...Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithStrict enables strict composition rules: a group may contain at most
// one division operator, and no explicit '*' may follow a division in the
// same group. "kg / m s^2" is accepted but "kg / m / s^2" and "kg / m * s"
// are rejected. Parenthesized sub-expressions reset the rules at their own
// level, so "kg / (m * s^2)" is valid.
//
// The default grammar accepts all of these forms; strict mode exists for
// callers that want to enforce the single-solidus convention on input they
// produce themselves.
func WithStrict() Option {
	return func(o *options) {
		o.strict = true
	}
}

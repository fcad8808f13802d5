package clamp

// Option is a named, prefix-identified wrapper around exactly one Value.
// Name is the identifier for programmatic lookup; Short and Long are the
// identities matched against tokens. At least one of Short/Long must be
// present, which Init enforces.
type Option struct {
	Name        string
	Description string
	Short       rune   // single character matched after the short prefix
	Long        string // matched after the long prefix
	Group       string
	Val         Value
}

// NewOption declares an option wrapping val. Short and Long start empty;
// set at least one before Init.
func NewOption(name, description string, val Value) *Option {
	return &Option{Name: name, Description: description, Val: val}
}

// WithShort sets the single-character short name.
func (o *Option) WithShort(short rune) *Option {
	o.Short = short
	return o
}

// WithLong sets the long name.
func (o *Option) WithLong(long string) *Option {
	o.Long = long
	return o
}

// WithGroup tags the option with a display group.
func (o *Option) WithGroup(group string) *Option {
	o.Group = group
	return o
}

// Forwarding surface: an Option exposes its wrapped value's get/set/describe
// contract directly.

// Set stores one token into the wrapped value.
func (o *Option) Set(token string) error { return o.Val.Set(token) }

// IsSet reports whether the wrapped value holds at least one parsed instance.
func (o *Option) IsSet() bool { return o.Val.IsSet() }

// Kind returns the wrapped value's concrete type name.
func (o *Option) Kind() string { return o.Val.Kind() }

// Count returns the wrapped value's filled slot count.
func (o *Option) Count() int { return o.Val.Count() }

// requiresValue reports whether a matched option must consume a value token.
// Boolean options default to true when no value is attached.
func (o *Option) requiresValue() bool {
	return o.Val.Kind() != "bool"
}

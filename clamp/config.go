package clamp

// Config holds the parsing rules shared by every Command in an initialized
// tree. Zero-valued fields are normalized to the documented defaults when
// the tree is initialized, so a partially filled Config is safe to pass.
type Config struct {
	// ShortPrefix introduces short options (default '-').
	ShortPrefix rune
	// DisableShortOpts turns off short-option recognition entirely.
	DisableShortOpts bool

	// LongPrefix introduces long options (default "--").
	LongPrefix string
	// DisableLongOpts turns off long-option recognition entirely.
	DisableLongOpts bool

	// OptValSeps are the characters accepted as inline name/value separator
	// within one token, e.g. '=' in "--target=arm64" (default "="). A space
	// separator is implicit since the shell already split it.
	OptValSeps string

	// AllowOptValNoSpace attaches the remainder of a short-option token to a
	// non-boolean option as its value, e.g. "-t5".
	AllowOptValNoSpace bool

	// AllowAbbreviatedLongOpts matches any prefix of a long name, selecting
	// the first option in declaration order whose long name starts with it.
	// Uniqueness is not verified; first match wins.
	AllowAbbreviatedLongOpts bool

	// GlobalSetBehavior applies to every value that did not declare its own
	// behavior (default BehaviorLast).
	GlobalSetBehavior SetBehavior

	// GlobalArgDelims are the default splitting characters for BehaviorMulti
	// values (default ",").
	GlobalArgDelims string

	// MaxChildren caps the per-value slot capacity (default 10).
	MaxChildren int

	// SubCmdsMandatory and ValsMandatory are tree-wide defaults applied to
	// every Command left at MandatoryDefault. A Command set to MandatoryOff
	// keeps its opt-out regardless of these.
	SubCmdsMandatory bool
	ValsMandatory    bool

	// AddHelpCmds injects reserved "help"/"usage" pseudo sub-commands and
	// matching boolean options into every Command (default on; see
	// DisableHelpCmds).
	DisableHelpCmds bool

	// OptionUsageFmt renders one option in usage output. Arguments: short
	// form, long form, value name, value kind.
	OptionUsageFmt string
	// ValueUsageFmt renders one value in usage output. Arguments: name, kind.
	ValueUsageFmt string
}

const (
	defaultShortPrefix    = '-'
	defaultLongPrefix     = "--"
	defaultOptValSeps     = "="
	defaultArgDelims      = ","
	defaultMaxChildren    = 10
	defaultOptionUsageFmt = "%s, %s <%s (%s)>"
	defaultValueUsageFmt  = "%s (%s)"
)

// DefaultConfig returns the configuration used when Init receives nil.
func DefaultConfig() *Config {
	return &Config{
		ShortPrefix:       defaultShortPrefix,
		LongPrefix:        defaultLongPrefix,
		OptValSeps:        defaultOptValSeps,
		GlobalSetBehavior: BehaviorLast,
		GlobalArgDelims:   defaultArgDelims,
		MaxChildren:       defaultMaxChildren,
		OptionUsageFmt:    defaultOptionUsageFmt,
		ValueUsageFmt:     defaultValueUsageFmt,
	}
}

// normalize fills zero-valued fields with defaults and rejects impossible
// combinations. Called once by Init on the root Command.
func (c *Config) normalize() error {
	if c.ShortPrefix == 0 {
		c.ShortPrefix = defaultShortPrefix
	}
	if c.LongPrefix == "" {
		c.LongPrefix = defaultLongPrefix
	}
	if c.OptValSeps == "" {
		c.OptValSeps = defaultOptValSeps
	}
	if c.GlobalSetBehavior == BehaviorDefault {
		c.GlobalSetBehavior = BehaviorLast
	}
	if c.GlobalArgDelims == "" {
		c.GlobalArgDelims = defaultArgDelims
	}
	if c.MaxChildren == 0 {
		c.MaxChildren = defaultMaxChildren
	}
	if c.MaxChildren < 1 {
		return newSchemaError("config: MaxChildren must be at least 1, got %d", c.MaxChildren)
	}
	if c.OptionUsageFmt == "" {
		c.OptionUsageFmt = defaultOptionUsageFmt
	}
	if c.ValueUsageFmt == "" {
		c.ValueUsageFmt = defaultValueUsageFmt
	}
	if c.DisableShortOpts && c.DisableLongOpts {
		return newSchemaError("config: short and long options cannot both be disabled")
	}
	return nil
}

// shortOptsEnabled reports whether tokens may be classified as short options.
func (c *Config) shortOptsEnabled() bool { return !c.DisableShortOpts }

// longOptsEnabled reports whether tokens may be classified as long options.
func (c *Config) longOptsEnabled() bool { return !c.DisableLongOpts }

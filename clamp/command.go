package clamp

// Reserved pseudo sub-command names injected by Init unless disabled.
const (
	HelpCmdName  = "help"
	UsageCmdName = "usage"
)

// Mandatory is a tri-state presence requirement. The zero value defers to
// the tree-wide Config default at Init time; MandatoryOff lets a Command
// opt out of a tree default that is on.
type Mandatory int

const (
	MandatoryDefault Mandatory = iota
	MandatoryOn
	MandatoryOff
)

// String returns the requirement name as used in declarative schemas.
func (m Mandatory) String() string {
	switch m {
	case MandatoryOn:
		return "on"
	case MandatoryOff:
		return "off"
	default:
		return "default"
	}
}

// Command is a container argument grouping sub-commands, options, and
// positional values. It is declared as nested schema data, validated and
// bound to a Config exactly once by Init, and mutated in place by a single
// Parse pass. A Command tree is a strict tree: every sub-command is owned
// exclusively by its parent.
type Command struct {
	Name        string
	Description string

	// SubCmdsMandatory requires a sub-command to be matched when any exist.
	// MandatoryDefault defers to Config.SubCmdsMandatory.
	SubCmdsMandatory Mandatory
	// ValsMandatory requires every declared value without a default to be
	// filled by the end of this command's token supply. MandatoryDefault
	// defers to Config.ValsMandatory.
	ValsMandatory Mandatory

	subCmds []*Command
	opts    []*Option
	vals    []Value

	activeSubCmd *Command
	cfg          *Config
	initialized  bool
	pseudo       bool // reserved help/usage sub-command
}

// NewCommand declares a command. Sub-commands, options, and values are
// attached with the Add* methods; declaration order is significant for
// abbreviation matching and positional fill order.
func NewCommand(name, description string) *Command {
	return &Command{Name: name, Description: description}
}

// AddSubCommand attaches sub-commands in declaration order.
func (c *Command) AddSubCommand(subs ...*Command) *Command {
	c.subCmds = append(c.subCmds, subs...)
	return c
}

// AddOption attaches options in declaration order.
func (c *Command) AddOption(opts ...*Option) *Command {
	c.opts = append(c.opts, opts...)
	return c
}

// AddValue attaches positional values in declaration order.
func (c *Command) AddValue(vals ...Value) *Command {
	c.vals = append(c.vals, vals...)
	return c
}

// Lookups. These are valid after Init; parsing mutates the storage they
// reach.

// SubCmd returns the sub-command with the given name, nil when absent.
func (c *Command) SubCmd(name string) *Command {
	for _, s := range c.subCmds {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// ActiveSubCmd returns the sub-command matched during parsing, nil when none
// was (reserved help/usage pseudo-commands included).
func (c *Command) ActiveSubCmd() *Command { return c.activeSubCmd }

// CheckSubCmd reports whether the named sub-command was matched.
func (c *Command) CheckSubCmd(name string) bool {
	return c.activeSubCmd != nil && c.activeSubCmd.Name == name
}

// Opt returns the option declared under the given programmatic name.
func (c *Command) Opt(name string) (*Option, error) {
	for _, o := range c.opts {
		if o.Name == name {
			return o, nil
		}
	}
	return nil, &ParseError{
		Type:    ErrorTypeUnknownOption,
		Message: "command " + c.Name + " has no option " + name,
		Arg:     name,
		Command: c.Name,
	}
}

// Val returns the positional value declared under the given name.
func (c *Command) Val(name string) (Value, error) {
	for _, v := range c.vals {
		if v.Name() == name {
			return v, nil
		}
	}
	return nil, &ParseError{
		Type:    ErrorTypeValueNotSet,
		Message: "command " + c.Name + " has no value " + name,
		Arg:     name,
		Command: c.Name,
	}
}

// Options returns the declared options in declaration order.
func (c *Command) Options() []*Option { return c.opts }

// Values returns the declared positional values in declaration order.
func (c *Command) Values() []Value { return c.vals }

// SubCommands returns the declared sub-commands, reserved pseudo-commands
// included once initialized.
func (c *Command) SubCommands() []*Command { return c.subCmds }

// HelpRequested reports whether the reserved help pseudo-command or boolean
// option was hit anywhere along the active command chain. Designed to be
// checked by the caller after a parse that otherwise succeeds.
func (c *Command) HelpRequested() bool { return c.reservedHit(HelpCmdName) }

// UsageRequested is the usage-side counterpart of HelpRequested.
func (c *Command) UsageRequested() bool { return c.reservedHit(UsageCmdName) }

func (c *Command) reservedHit(name string) bool {
	if o, err := c.Opt(name); err == nil {
		if b, gerr := Get[bool](o.Val); gerr == nil && b {
			return true
		}
	}
	if c.activeSubCmd != nil {
		if c.activeSubCmd.pseudo && c.activeSubCmd.Name == name {
			return true
		}
		return c.activeSubCmd.reservedHit(name)
	}
	return false
}

// realSubCmds returns the declared sub-commands excluding reserved
// pseudo-commands.
func (c *Command) realSubCmds() []*Command {
	out := make([]*Command, 0, len(c.subCmds))
	for _, s := range c.subCmds {
		if !s.pseudo {
			out = append(out, s)
		}
	}
	return out
}

// Init validates the declared tree once and produces the runtime-ready
// instance Parse operates on: sibling names are checked for distinctness,
// configuration defaults are resolved, every value's slot storage is bound,
// and reserved help/usage pseudo-commands are injected unless disabled.
// Init is not reentrant on the same instance.
func (c *Command) Init(cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.normalize(); err != nil {
		return err
	}
	return c.init(cfg)
}

func (c *Command) init(cfg *Config) error {
	if c.initialized {
		return newSchemaError("command %q is already initialized", c.Name)
	}
	if c.Name == "" {
		return newSchemaError("command declared without a name")
	}
	c.cfg = cfg
	if c.SubCmdsMandatory == MandatoryDefault && cfg.SubCmdsMandatory {
		c.SubCmdsMandatory = MandatoryOn
	}
	if c.ValsMandatory == MandatoryDefault && cfg.ValsMandatory {
		c.ValsMandatory = MandatoryOn
	}

	if err := c.validateSiblings(); err != nil {
		return err
	}

	for _, o := range c.opts {
		if err := o.Val.bind(cfg); err != nil {
			return err
		}
	}
	for _, v := range c.vals {
		if err := v.bind(cfg); err != nil {
			return err
		}
	}

	if !cfg.DisableHelpCmds {
		c.injectReserved()
	}

	for _, s := range c.subCmds {
		if s.pseudo {
			continue
		}
		if err := s.init(cfg); err != nil {
			return err
		}
	}

	c.initialized = true
	return nil
}

// validateSiblings enforces the distinctness invariants once, at
// tree-construction time, never during parsing.
func (c *Command) validateSiblings() error {
	subNames := make(map[string]bool, len(c.subCmds))
	for _, s := range c.subCmds {
		if s == c {
			return newSchemaError("command %q cannot be its own sub-command", c.Name)
		}
		if subNames[s.Name] {
			return newSchemaError("command %q declares duplicate sub-command %q", c.Name, s.Name)
		}
		subNames[s.Name] = true
	}

	optNames := make(map[string]bool, len(c.opts))
	shorts := make(map[rune]bool, len(c.opts))
	longs := make(map[string]bool, len(c.opts))
	for _, o := range c.opts {
		if o.Val == nil {
			return newSchemaError("option %q of command %q has no value", o.Name, c.Name)
		}
		if o.Short == 0 && o.Long == "" {
			return newSchemaError("option %q of command %q needs a short or long name", o.Name, c.Name)
		}
		if optNames[o.Name] {
			return newSchemaError("command %q declares duplicate option %q", c.Name, o.Name)
		}
		optNames[o.Name] = true
		if o.Short != 0 {
			if shorts[o.Short] {
				return newSchemaError("command %q declares duplicate short option %q", c.Name, string(o.Short))
			}
			shorts[o.Short] = true
		}
		if o.Long != "" {
			if longs[o.Long] {
				return newSchemaError("command %q declares duplicate long option %q", c.Name, o.Long)
			}
			longs[o.Long] = true
		}
	}

	valNames := make(map[string]bool, len(c.vals))
	for _, v := range c.vals {
		if valNames[v.Name()] {
			return newSchemaError("command %q declares duplicate value %q", c.Name, v.Name())
		}
		valNames[v.Name()] = true
	}

	return nil
}

// injectReserved adds the help/usage pseudo sub-commands and matching
// boolean options, skipping any identity the declaration already claimed.
// Both the programmatic name and the long name count as claimed, so a user
// option like --help never collides with an injected duplicate.
func (c *Command) injectReserved() {
	for _, name := range []string{HelpCmdName, UsageCmdName} {
		if c.SubCmd(name) == nil {
			c.subCmds = append(c.subCmds, &Command{
				Name:        name,
				Description: "Show " + name + " for this command",
				pseudo:      true,
				cfg:         c.cfg,
				initialized: true,
			})
		}
		if _, err := c.Opt(name); err != nil && !c.longTaken(name) {
			val := BoolValue(name, "Show "+name+" for this command")
			_ = val.bind(c.cfg) // bool values cannot fail to bind
			opt := NewOption(name, "Show "+name+" for this command", val).WithLong(name)
			if name == HelpCmdName && !c.shortTaken('h') {
				opt.Short = 'h'
			}
			c.opts = append(c.opts, opt)
		}
	}
}

func (c *Command) shortTaken(short rune) bool {
	for _, o := range c.opts {
		if o.Short == short {
			return true
		}
	}
	return false
}

func (c *Command) longTaken(long string) bool {
	for _, o := range c.opts {
		if o.Long == long {
			return true
		}
	}
	return false
}

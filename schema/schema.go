// Package schema builds command trees from declarative documents or from
// tagged Go structs, so a tool's argument surface can live in a YAML or JSON
// file next to its code instead of in construction calls.
package schema

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/dzonerzy/go-clamp/clamp"
)

// Document is the root of a declarative command-tree description.
type Document struct {
	Config  *ConfigSpec `yaml:"config,omitempty" json:"config,omitempty"`
	Command CommandSpec `yaml:"command" json:"command"`
}

// ConfigSpec mirrors the parsing rules of clamp.Config. Absent fields keep
// the library defaults.
type ConfigSpec struct {
	ShortPrefix        string `yaml:"short_prefix,omitempty" json:"short_prefix,omitempty"`
	DisableShortOpts   bool   `yaml:"disable_short_opts,omitempty" json:"disable_short_opts,omitempty"`
	LongPrefix         string `yaml:"long_prefix,omitempty" json:"long_prefix,omitempty"`
	DisableLongOpts    bool   `yaml:"disable_long_opts,omitempty" json:"disable_long_opts,omitempty"`
	OptValSeps         string `yaml:"opt_val_seps,omitempty" json:"opt_val_seps,omitempty"`
	AllowOptValNoSpace bool   `yaml:"allow_opt_val_no_space,omitempty" json:"allow_opt_val_no_space,omitempty"`
	AllowAbbreviated   bool   `yaml:"allow_abbreviated,omitempty" json:"allow_abbreviated,omitempty"`
	SetBehavior        string `yaml:"set_behavior,omitempty" json:"set_behavior,omitempty"`
	ArgDelims          string `yaml:"arg_delims,omitempty" json:"arg_delims,omitempty"`
	MaxChildren        int    `yaml:"max_children,omitempty" json:"max_children,omitempty"`
	SubCmdsMandatory   bool   `yaml:"sub_cmds_mandatory,omitempty" json:"sub_cmds_mandatory,omitempty"`
	ValsMandatory      bool   `yaml:"vals_mandatory,omitempty" json:"vals_mandatory,omitempty"`
	DisableHelpCmds    bool   `yaml:"disable_help_cmds,omitempty" json:"disable_help_cmds,omitempty"`
}

// CommandSpec describes one command and its children. The mandatory fields
// are pointers so a document can distinguish "defer to the tree default"
// (absent) from an explicit per-command on or off.
type CommandSpec struct {
	Name             string        `yaml:"name" json:"name"`
	Description      string        `yaml:"description,omitempty" json:"description,omitempty"`
	SubCmdsMandatory *bool         `yaml:"sub_cmds_mandatory,omitempty" json:"sub_cmds_mandatory,omitempty"`
	ValsMandatory    *bool         `yaml:"vals_mandatory,omitempty" json:"vals_mandatory,omitempty"`
	SubCommands      []CommandSpec `yaml:"commands,omitempty" json:"commands,omitempty"`
	Options          []OptionSpec  `yaml:"options,omitempty" json:"options,omitempty"`
	Values           []ValueSpec   `yaml:"values,omitempty" json:"values,omitempty"`
}

// OptionSpec describes one named option wrapping a value.
type OptionSpec struct {
	Name        string    `yaml:"name" json:"name"`
	Description string    `yaml:"description,omitempty" json:"description,omitempty"`
	Short       string    `yaml:"short,omitempty" json:"short,omitempty"`
	Long        string    `yaml:"long,omitempty" json:"long,omitempty"`
	Group       string    `yaml:"group,omitempty" json:"group,omitempty"`
	Value       ValueSpec `yaml:"value" json:"value"`
}

// ValueSpec describes one typed value. Kind selects one of the built-in
// kinds; Default is kept textual and parsed by the value itself at
// initialization time.
type ValueSpec struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Kind        string `yaml:"kind,omitempty" json:"kind,omitempty"`
	Behavior    string `yaml:"behavior,omitempty" json:"behavior,omitempty"`
	Delims      string `yaml:"delims,omitempty" json:"delims,omitempty"`
	Max         int    `yaml:"max,omitempty" json:"max,omitempty"`
	Default     string `yaml:"default,omitempty" json:"default,omitempty"`
}

// FromYAML decodes a declarative document from YAML.
func FromYAML(r io.Reader) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("schema: decoding yaml document: %w", err)
	}
	return &doc, nil
}

// FromJSON decodes a declarative document from JSON.
func FromJSON(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("schema: reading json document: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schema: decoding json document: %w", err)
	}
	return &doc, nil
}

// Build constructs and initializes the command tree the document describes.
func (d *Document) Build() (*clamp.Command, error) {
	cfg, err := d.config()
	if err != nil {
		return nil, err
	}
	root, err := buildCommand(&d.Command)
	if err != nil {
		return nil, err
	}
	if err := root.Init(cfg); err != nil {
		return nil, err
	}
	return root, nil
}

func (d *Document) config() (*clamp.Config, error) {
	if d.Config == nil {
		return nil, nil
	}
	s := d.Config
	cfg := clamp.DefaultConfig()
	if s.ShortPrefix != "" {
		runes := []rune(s.ShortPrefix)
		if len(runes) != 1 {
			return nil, fmt.Errorf("schema: short_prefix must be a single character, got %q", s.ShortPrefix)
		}
		cfg.ShortPrefix = runes[0]
	}
	cfg.DisableShortOpts = s.DisableShortOpts
	if s.LongPrefix != "" {
		cfg.LongPrefix = s.LongPrefix
	}
	cfg.DisableLongOpts = s.DisableLongOpts
	if s.OptValSeps != "" {
		cfg.OptValSeps = s.OptValSeps
	}
	cfg.AllowOptValNoSpace = s.AllowOptValNoSpace
	cfg.AllowAbbreviatedLongOpts = s.AllowAbbreviated
	if s.SetBehavior != "" {
		b, err := parseBehavior(s.SetBehavior)
		if err != nil {
			return nil, err
		}
		cfg.GlobalSetBehavior = b
	}
	if s.ArgDelims != "" {
		cfg.GlobalArgDelims = s.ArgDelims
	}
	if s.MaxChildren != 0 {
		cfg.MaxChildren = s.MaxChildren
	}
	cfg.SubCmdsMandatory = s.SubCmdsMandatory
	cfg.ValsMandatory = s.ValsMandatory
	cfg.DisableHelpCmds = s.DisableHelpCmds
	return cfg, nil
}

func buildCommand(s *CommandSpec) (*clamp.Command, error) {
	if s.Name == "" {
		return nil, fmt.Errorf("schema: command declared without a name")
	}
	cmd := clamp.NewCommand(s.Name, s.Description)
	if s.SubCmdsMandatory != nil {
		cmd.SubCmdsMandatory = mandatoryFrom(*s.SubCmdsMandatory)
	}
	if s.ValsMandatory != nil {
		cmd.ValsMandatory = mandatoryFrom(*s.ValsMandatory)
	}

	for i := range s.SubCommands {
		sub, err := buildCommand(&s.SubCommands[i])
		if err != nil {
			return nil, err
		}
		cmd.AddSubCommand(sub)
	}
	for i := range s.Options {
		opt, err := buildOption(&s.Options[i])
		if err != nil {
			return nil, err
		}
		cmd.AddOption(opt)
	}
	for i := range s.Values {
		val, err := buildValue(&s.Values[i])
		if err != nil {
			return nil, err
		}
		cmd.AddValue(val)
	}
	return cmd, nil
}

func buildOption(s *OptionSpec) (*clamp.Option, error) {
	val, err := buildValue(&s.Value)
	if err != nil {
		return nil, fmt.Errorf("schema: option %q: %w", s.Name, err)
	}
	opt := clamp.NewOption(s.Name, s.Description, val)
	if s.Short != "" {
		runes := []rune(s.Short)
		if len(runes) != 1 {
			return nil, fmt.Errorf("schema: option %q: short must be a single character, got %q", s.Name, s.Short)
		}
		opt.WithShort(runes[0])
	}
	if s.Long != "" {
		opt.WithLong(s.Long)
	}
	if s.Group != "" {
		opt.WithGroup(s.Group)
	}
	return opt, nil
}

// buildValue dispatches on the declared kind. The string kind is the default
// when none is given.
func buildValue(s *ValueSpec) (clamp.Value, error) {
	if s.Name == "" {
		return nil, fmt.Errorf("schema: value declared without a name")
	}
	switch s.Kind {
	case "", "string":
		return configure(clamp.StringValue(s.Name, s.Description), s)
	case "bool":
		return configure(clamp.BoolValue(s.Name, s.Description), s)
	case "int":
		return configure(clamp.IntValue(s.Name, s.Description), s)
	case "int64":
		return configure(clamp.Int64Value(s.Name, s.Description), s)
	case "uint":
		return configure(clamp.UintValue(s.Name, s.Description), s)
	case "uint64":
		return configure(clamp.Uint64Value(s.Name, s.Description), s)
	case "float64":
		return configure(clamp.Float64Value(s.Name, s.Description), s)
	default:
		return nil, fmt.Errorf("schema: value %q has unknown kind %q", s.Name, s.Kind)
	}
}

func configure[T any](v *clamp.Typed[T], s *ValueSpec) (clamp.Value, error) {
	if s.Behavior != "" {
		b, err := parseBehavior(s.Behavior)
		if err != nil {
			return nil, fmt.Errorf("schema: value %q: %w", s.Name, err)
		}
		v.Using(b)
	}
	if s.Delims != "" {
		v.Delims(s.Delims)
	}
	if s.Max != 0 {
		v.Max(s.Max)
	}
	if s.Default != "" {
		v.DefaultText(s.Default)
	}
	return v, nil
}

func mandatoryFrom(on bool) clamp.Mandatory {
	if on {
		return clamp.MandatoryOn
	}
	return clamp.MandatoryOff
}

func parseBehavior(s string) (clamp.SetBehavior, error) {
	switch s {
	case "first":
		return clamp.BehaviorFirst, nil
	case "last":
		return clamp.BehaviorLast, nil
	case "multi":
		return clamp.BehaviorMulti, nil
	default:
		return clamp.BehaviorDefault, fmt.Errorf("unknown set behavior %q", s)
	}
}

//nolint:testpackage // using package name 'clamp' to access unexported fields for testing
package clamp

import (
	"errors"
	"testing"
)

func TestInitRejectsDuplicates(t *testing.T) {
	cases := []struct {
		name string
		cmd  *Command
	}{
		{
			"duplicate sub-commands",
			NewCommand("root", "").AddSubCommand(
				NewCommand("build", ""),
				NewCommand("build", ""),
			),
		},
		{
			"duplicate option names",
			NewCommand("root", "").AddOption(
				NewOption("verbose", "", BoolValue("verbose", "")).WithShort('v'),
				NewOption("verbose", "", BoolValue("verbose2", "")).WithShort('w'),
			),
		},
		{
			"duplicate short names",
			NewCommand("root", "").AddOption(
				NewOption("verbose", "", BoolValue("verbose", "")).WithShort('v'),
				NewOption("version", "", BoolValue("version", "")).WithShort('v'),
			),
		},
		{
			"duplicate long names",
			NewCommand("root", "").AddOption(
				NewOption("a", "", BoolValue("a", "")).WithLong("same"),
				NewOption("b", "", BoolValue("b", "")).WithLong("same"),
			),
		},
		{
			"duplicate value names",
			NewCommand("root", "").AddValue(
				StringValue("target", ""),
				StringValue("target", ""),
			),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cmd.Init(nil)
			var perr *ParseError
			if !errors.As(err, &perr) || perr.Type != ErrorTypeSchema {
				t.Fatalf("Expected schema error, got %v", err)
			}
		})
	}
}

func TestInitRejectsNamelessOption(t *testing.T) {
	cmd := NewCommand("root", "").AddOption(
		NewOption("quiet", "", BoolValue("quiet", "")),
	)
	err := cmd.Init(nil)
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Type != ErrorTypeSchema {
		t.Fatalf("An option without short or long name must fail Init, got %v", err)
	}
}

func TestInitRejectsSelfReference(t *testing.T) {
	cmd := NewCommand("root", "")
	cmd.AddSubCommand(cmd)
	err := cmd.Init(nil)
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Type != ErrorTypeSchema {
		t.Fatalf("Expected schema error for self-reference, got %v", err)
	}
}

func TestInitRejectsReuse(t *testing.T) {
	cmd := NewCommand("root", "")
	if err := cmd.Init(nil); err != nil {
		t.Fatalf("First Init failed: %v", err)
	}
	if err := cmd.Init(nil); err == nil {
		t.Error("Second Init on the same instance must fail")
	}
}

func TestParseRequiresInit(t *testing.T) {
	cmd := NewCommand("root", "")
	err := cmd.Parse([]string{"x"})
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Type != ErrorTypeSchema {
		t.Fatalf("Parse before Init must fail with a schema error, got %v", err)
	}
}

func TestReservedInjection(t *testing.T) {
	cmd := NewCommand("root", "").AddSubCommand(NewCommand("build", ""))
	if err := cmd.Init(nil); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if cmd.SubCmd(HelpCmdName) == nil || cmd.SubCmd(UsageCmdName) == nil {
		t.Error("Expected help and usage pseudo sub-commands after Init")
	}
	if opt, err := cmd.Opt(HelpCmdName); err != nil {
		t.Errorf("Expected an injected help option: %v", err)
	} else if opt.Short != 'h' {
		t.Errorf("Expected the help option to claim -h, got %q", string(opt.Short))
	}

	// Pseudo commands never count as real sub-commands.
	if got := len(cmd.realSubCmds()); got != 1 {
		t.Errorf("Expected one real sub-command, got %d", got)
	}
}

func TestReservedInjectionRespectsDeclarations(t *testing.T) {
	cmd := NewCommand("root", "").AddOption(
		NewOption("host", "", StringValue("host", "")).WithShort('h'),
	)
	if err := cmd.Init(nil); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	opt, err := cmd.Opt(HelpCmdName)
	if err != nil {
		t.Fatalf("Expected an injected help option: %v", err)
	}
	if opt.Short != 0 {
		t.Error("Help must not claim -h when the declaration already did")
	}
}

func TestReservedInjectionRespectsClaimedLongNames(t *testing.T) {
	cmd := NewCommand("root", "").AddOption(
		NewOption("assist", "", BoolValue("assist", "")).WithLong("help"),
	)
	if err := cmd.Init(nil); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	helpLongs := 0
	for _, o := range cmd.Options() {
		if o.Long == "help" {
			helpLongs++
		}
	}
	if helpLongs != 1 {
		t.Fatalf("Expected exactly one option with long name 'help', got %d", helpLongs)
	}

	if err := cmd.Parse([]string{"--help"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	assist, err := cmd.Opt("assist")
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := Get[bool](assist.Val); !got {
		t.Error("--help must reach the declared option, not an injected duplicate")
	}
}

func TestDisableHelpCmds(t *testing.T) {
	cmd := NewCommand("root", "")
	if err := cmd.Init(&Config{DisableHelpCmds: true}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if cmd.SubCmd(HelpCmdName) != nil {
		t.Error("Help pseudo-command injected despite DisableHelpCmds")
	}
	if _, err := cmd.Opt(HelpCmdName); err == nil {
		t.Error("Help option injected despite DisableHelpCmds")
	}
}

func TestConfigDefaultsPropagate(t *testing.T) {
	sub := NewCommand("build", "").AddValue(StringValue("target", ""))
	cmd := NewCommand("root", "").AddSubCommand(sub)
	if err := cmd.Init(&Config{SubCmdsMandatory: true, ValsMandatory: true}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if cmd.SubCmdsMandatory != MandatoryOn || sub.SubCmdsMandatory != MandatoryOn {
		t.Error("SubCmdsMandatory default should apply to every command")
	}
	if sub.ValsMandatory != MandatoryOn {
		t.Error("ValsMandatory default should apply to every command")
	}
}

func TestMandatoryOptOut(t *testing.T) {
	sub := NewCommand("status", "").AddValue(StringValue("path", ""))
	sub.ValsMandatory = MandatoryOff
	root := NewCommand("root", "").AddSubCommand(sub)
	root.SubCmdsMandatory = MandatoryOff
	if err := root.Init(&Config{SubCmdsMandatory: true, ValsMandatory: true}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if root.SubCmdsMandatory != MandatoryOff || sub.ValsMandatory != MandatoryOff {
		t.Error("An explicit MandatoryOff must survive a true tree default")
	}
	if err := root.Parse([]string{}); err != nil {
		t.Fatalf("Opted-out root must parse without a sub-command, got %v", err)
	}

	sub2 := NewCommand("status", "").AddValue(StringValue("path", ""))
	sub2.ValsMandatory = MandatoryOff
	root2 := NewCommand("root", "").AddSubCommand(sub2)
	if err := root2.Init(&Config{ValsMandatory: true}); err != nil {
		t.Fatal(err)
	}
	if err := root2.Parse([]string{"status"}); err != nil {
		t.Fatalf("Opted-out sub-command must parse with no values, got %v", err)
	}
}

func TestConfigValidation(t *testing.T) {
	if err := NewCommand("root", "").Init(&Config{MaxChildren: -1}); err == nil {
		t.Error("Negative MaxChildren must fail")
	}
	if err := NewCommand("root", "").Init(&Config{DisableShortOpts: true, DisableLongOpts: true}); err == nil {
		t.Error("Disabling both option families must fail")
	}
}

func TestLookups(t *testing.T) {
	target := StringValue("target", "")
	opt := NewOption("jobs", "", IntValue("jobs", "")).WithShort('j')
	sub := NewCommand("build", "").AddOption(opt).AddValue(target)
	cmd := NewCommand("root", "").AddSubCommand(sub)
	if err := cmd.Init(nil); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if got := cmd.SubCmd("build"); got != sub {
		t.Error("SubCmd should return the declared instance")
	}
	if got, err := sub.Opt("jobs"); err != nil || got != opt {
		t.Errorf("Opt lookup failed: %v", err)
	}
	if got, err := sub.Val("target"); err != nil || got != Value(target) {
		t.Errorf("Val lookup failed: %v", err)
	}

	if _, err := sub.Opt("nope"); err == nil {
		t.Error("Opt lookup for an undeclared name must fail")
	}
	if _, err := sub.Val("nope"); err == nil {
		t.Error("Val lookup for an undeclared name must fail")
	}
}

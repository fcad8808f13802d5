//nolint:testpackage // using package name 'clamp' to access unexported fields for testing
package clamp

import (
	"strings"
	"testing"
)

func TestUsageLine(t *testing.T) {
	build := NewCommand("build", "Compile the project").
		AddOption(NewOption("jobs", "Parallel jobs", IntValue("jobs", "")).WithShort('j').WithLong("jobs")).
		AddValue(StringValue("profile", "Build profile"))
	build.ValsMandatory = MandatoryOn
	root := NewCommand("tool", "Example tool").AddSubCommand(build)
	root.SubCmdsMandatory = MandatoryOn
	if err := root.Init(nil); err != nil {
		t.Fatal(err)
	}

	var sb strings.Builder
	root.Usage(&sb)
	got := sb.String()
	if !strings.Contains(got, "Usage: tool") {
		t.Errorf("Expected the command name in the synopsis, got %q", got)
	}
	if !strings.Contains(got, "<command>") {
		t.Errorf("Mandatory sub-commands should render as <command>, got %q", got)
	}

	sb.Reset()
	build.Usage(&sb)
	got = sb.String()
	if !strings.Contains(got, "<profile>") {
		t.Errorf("Mandatory values should render as <profile>, got %q", got)
	}
}

func TestHelpSections(t *testing.T) {
	build := NewCommand("build", "Compile the project").
		AddOption(
			NewOption("jobs", "Parallel jobs", IntValue("jobs", "").Default(1)).WithShort('j').WithLong("jobs"),
			NewOption("verbose", "Verbose output", BoolValue("verbose", "")).WithShort('v').WithLong("verbose"),
		).
		AddValue(StringValue("profile", "Build profile").Default("debug"))
	root := NewCommand("tool", "Example tool").AddSubCommand(build)
	if err := root.Init(nil); err != nil {
		t.Fatal(err)
	}

	var sb strings.Builder
	root.Help(&sb)
	got := sb.String()
	for _, want := range []string{"Example tool", "Commands:", "build", "Options:"} {
		if !strings.Contains(got, want) {
			t.Errorf("Root help missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "\n  help ") && !strings.Contains(got, "Commands:") {
		t.Errorf("Unexpected rendering:\n%s", got)
	}

	sb.Reset()
	build.Help(&sb)
	got = sb.String()
	for _, want := range []string{"Values:", "profile", "(default: debug)", "-j, --jobs", "-v, --verbose"} {
		if !strings.Contains(got, want) {
			t.Errorf("Build help missing %q:\n%s", want, got)
		}
	}
	// Valued options render through the configured format.
	if !strings.Contains(got, "jobs (int)") {
		t.Errorf("Expected the value name and kind for --jobs:\n%s", got)
	}
}

func TestHelpHidesPseudoCommands(t *testing.T) {
	root := NewCommand("tool", "").AddSubCommand(NewCommand("build", ""))
	if err := root.Init(nil); err != nil {
		t.Fatal(err)
	}
	var sb strings.Builder
	root.Help(&sb)
	got := sb.String()
	if strings.Contains(got, UsageCmdName+" ") && strings.Count(got, "Commands:") != 1 {
		t.Errorf("Pseudo commands must not be listed:\n%s", got)
	}
	for _, line := range strings.Split(got, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, HelpCmdName+" ") || strings.HasPrefix(trimmed, UsageCmdName+" ") {
			t.Errorf("Pseudo command leaked into the command list: %q", line)
		}
	}
}

func TestWriteAlignedCountsRunes(t *testing.T) {
	rows := []helpRow{
		{left: "naïve", right: "First"},
		{left: "size", right: "Second"},
	}
	var sb strings.Builder
	writeAligned(&sb, rows)
	want := "  naïve  First\n  size   Second\n"
	if got := sb.String(); got != want {
		t.Errorf("Columns must align on rune width, got %q want %q", got, want)
	}
}

func TestHelpTargetRoot(t *testing.T) {
	root := NewCommand("tool", "")
	if err := root.Init(nil); err != nil {
		t.Fatal(err)
	}
	if got := root.HelpTarget(); got != root {
		t.Errorf("Expected the root itself before any parse, got %q", got.Name)
	}
}
